package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_catalogShape(t *testing.T) {
	assert.Len(t, Functions, 17)
	seen := make(map[int]bool, len(Functions))
	for _, fn := range Functions {
		assert.False(t, seen[fn.ID], "duplicate function id %d", fn.ID)
		seen[fn.ID] = true
		assert.GreaterOrEqual(t, fn.ID, 1)
		assert.LessOrEqual(t, fn.ID, 17)
		assert.NotEmpty(t, fn.AllowedRoles, "function %d has no allowed roles", fn.ID)
		for _, r := range fn.AllowedRoles {
			assert.True(t, IsValidRole(r), "function %d lists unknown role %q", fn.ID, r)
		}
	}
}

// Test_catalogRoles pins the allowed-role list of every catalog entry. The
// lists are authorization data; any edit here must be deliberate.
func Test_catalogRoles(t *testing.T) {
	board := []Role{RoleAdmin, RolePresident, RoleSecretary, RoleTreasurer, RoleAuditor, RolePIO, RoleBoard}
	officers := []Role{RoleAdmin, RolePresident, RoleSecretary, RoleTreasurer}
	paymentManagers := []Role{RoleAdmin, RolePresident, RoleTreasurer}

	want := map[int][]Role{
		FnPrintCertificate:      officers,
		FnPrintMemberList:       board,
		FnAddMembers:            paymentManagers,
		FnAddFiles:              paymentManagers,
		FnDeleteMembers:         paymentManagers,
		FnAssignStatus:          paymentManagers,
		FnUploadOwnPicture:      board,
		FnUploadMemberPictures:  officers,
		FnAddPayment:            paymentManagers,
		FnUpdatePayment:         paymentManagers,
		FnExportToExcel:         {RoleAdmin, RolePresident, RoleTreasurer, RoleAuditor},
		FnManageMilestones:      paymentManagers,
		FnApproveEmailAccounts:  {RoleAdmin, RolePresident},
		FnLinkEmailToMember:     {RoleAdmin, RolePresident},
		FnPostBulletinUpdates:   board,
		FnViewLatestPayments:    {RoleAdmin, RolePresident, RoleSecretary, RoleTreasurer, RoleAuditor, RolePIO, RoleBoard, RoleMember},
		FnViewAllPaymentRecords: {RoleAdmin, RolePresident, RoleTreasurer, RoleAuditor, RolePIO, RoleBoard},
	}

	assert.Len(t, Functions, len(want))
	for _, fn := range Functions {
		assert.Equal(t, want[fn.ID], fn.AllowedRoles, "function %d", fn.ID)
	}
}

func Test_HasAccess(t *testing.T) {
	tests := []struct {
		name       string
		role       Role
		functionID int
		want       bool
	}{
		{name: "member cannot delete members", role: RoleMember, functionID: FnDeleteMembers, want: false},
		{name: "treasurer can delete members", role: RoleTreasurer, functionID: FnDeleteMembers, want: true},
		{name: "auditor can export to excel", role: RoleAuditor, functionID: FnExportToExcel, want: true},
		{name: "secretary cannot export to excel", role: RoleSecretary, functionID: FnExportToExcel, want: false},
		{name: "admin can approve email accounts", role: RoleAdmin, functionID: FnApproveEmailAccounts, want: true},
		{name: "treasurer cannot approve email accounts", role: RoleTreasurer, functionID: FnApproveEmailAccounts, want: false},
		{name: "member can view latest payments", role: RoleMember, functionID: FnViewLatestPayments, want: true},
		{name: "member cannot view all payment records", role: RoleMember, functionID: FnViewAllPaymentRecords, want: false},
		{name: "secretary cannot view all payment records", role: RoleSecretary, functionID: FnViewAllPaymentRecords, want: false},
		{name: "auditor can view all payment records", role: RoleAuditor, functionID: FnViewAllPaymentRecords, want: true},
		{name: "unknown function fails closed", role: RoleAdmin, functionID: 18, want: false},
		{name: "zero function fails closed", role: RoleAdmin, functionID: 0, want: false},
		{name: "unknown role denied", role: Role("Janitor"), functionID: FnAddMembers, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasAccess(tt.role, tt.functionID))
		})
	}
}

func Test_AccessibleFunctions(t *testing.T) {
	for _, role := range AllRoles {
		fns := AccessibleFunctions(role)
		for _, fn := range fns {
			assert.True(t, HasAccess(role, fn.ID))
		}
		// every allowed catalog entry is reported
		var count int
		for _, fn := range Functions {
			if HasAccess(role, fn.ID) {
				count++
			}
		}
		assert.Len(t, fns, count, "role %s", role)
	}

	assert.Empty(t, AccessibleFunctions(Role("Janitor")))
}

func Test_CanViewTab(t *testing.T) {
	tests := []struct {
		name string
		role Role
		tab  Tab
		want bool
	}{
		{name: "dashboard visible to everyone", role: RoleMember, tab: TabDashboard, want: true},
		{name: "profile visible to everyone", role: RoleMember, tab: TabProfile, want: true},
		{name: "registration follows add-members function", role: RoleTreasurer, tab: TabRegistration, want: true},
		{name: "secretary cannot register members", role: RoleSecretary, tab: TabRegistration, want: false},
		{name: "officers tab explicit list", role: RoleSecretary, tab: TabOfficers, want: true},
		{name: "auditor cannot see officers tab", role: RoleAuditor, tab: TabOfficers, want: false},
		{name: "reports follows member-list function", role: RoleBoard, tab: TabReports, want: true},
		{name: "member cannot see reports", role: RoleMember, tab: TabReports, want: false},
		{name: "milestones follows manage-milestones function", role: RoleAuditor, tab: TabMilestones, want: false},
		{name: "user management is admin only", role: RolePresident, tab: TabUserManagement, want: false},
		{name: "admin sees user management", role: RoleAdmin, tab: TabUserManagement, want: true},
		{name: "unknown tab hidden", role: RoleAdmin, tab: Tab("payroll"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanViewTab(tt.role, tt.tab))
		})
	}
}

func Test_VisibleTabs(t *testing.T) {
	assert.Equal(t, []Tab{TabDashboard, TabProfile}, VisibleTabs(RoleMember))
	assert.Equal(t, AllTabs, VisibleTabs(RoleAdmin))
}
