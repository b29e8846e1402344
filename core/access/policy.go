package access

// Function is one of the 17 numbered system capabilities. The catalog below is
// the authorization source of truth: every mutating or sensitive action in the
// system is gated by one of these entries. It is static, process-wide
// configuration; ids and role lists are load-bearing and must be kept as-is.
type Function struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	AllowedRoles []Role `json:"allowed_roles"`
}

// Function ids.
const (
	FnPrintCertificate      = 1
	FnPrintMemberList       = 2
	FnAddMembers            = 3
	FnAddFiles              = 4
	FnDeleteMembers         = 5
	FnAssignStatus          = 6
	FnUploadOwnPicture      = 7
	FnUploadMemberPictures  = 8
	FnAddPayment            = 9
	FnUpdatePayment         = 10
	FnExportToExcel         = 11
	FnManageMilestones      = 12
	FnApproveEmailAccounts  = 13
	FnLinkEmailToMember     = 14
	FnPostBulletinUpdates   = 15
	FnViewLatestPayments    = 16
	FnViewAllPaymentRecords = 17
)

var boardRoles = []Role{RoleAdmin, RolePresident, RoleSecretary, RoleTreasurer, RoleAuditor, RolePIO, RoleBoard}

// Functions is the fixed capability catalog.
var Functions = []Function{
	{FnPrintCertificate, "Generate and Print Certificate of Membership", "Create membership certificates",
		[]Role{RoleAdmin, RolePresident, RoleSecretary, RoleTreasurer}},
	{FnPrintMemberList, "Generate and Print List of Members", "Export member lists", boardRoles},
	{FnAddMembers, "Add Members", "Register new members",
		[]Role{RoleAdmin, RolePresident, RoleTreasurer}},
	{FnAddFiles, "Add Files", "Upload member documents",
		[]Role{RoleAdmin, RolePresident, RoleTreasurer}},
	{FnDeleteMembers, "Delete Members", "Remove members from system",
		[]Role{RoleAdmin, RolePresident, RoleTreasurer}},
	{FnAssignStatus, "Assign Status", "Update member status",
		[]Role{RoleAdmin, RolePresident, RoleTreasurer}},
	{FnUploadOwnPicture, "Upload Own Profile Picture", "Update personal profile", boardRoles},
	{FnUploadMemberPictures, "Upload Profile Pictures to Members and Officers", "Manage member photos",
		[]Role{RoleAdmin, RolePresident, RoleSecretary, RoleTreasurer}},
	{FnAddPayment, "Add Payment", "Record member payments",
		[]Role{RoleAdmin, RolePresident, RoleTreasurer}},
	{FnUpdatePayment, "Update Payment", "Modify payment records",
		[]Role{RoleAdmin, RolePresident, RoleTreasurer}},
	{FnExportToExcel, "Export Data to Excel", "Generate Excel reports",
		[]Role{RoleAdmin, RolePresident, RoleTreasurer, RoleAuditor}},
	{FnManageMilestones, "Create and Manage Milestones", "Set milestone benefits",
		[]Role{RoleAdmin, RolePresident, RoleTreasurer}},
	{FnApproveEmailAccounts, "Approve/Disapprove Member Email Accounts", "Manage email access",
		[]Role{RoleAdmin, RolePresident}},
	{FnLinkEmailToMember, "Link Email Address to Member ID", "Connect emails to members",
		[]Role{RoleAdmin, RolePresident}},
	{FnPostBulletinUpdates, "Post Bulletin Updates", "Manage announcements", boardRoles},
	{FnViewLatestPayments, "View All Members and Latest Payments", "Access member overview",
		append(append([]Role{}, boardRoles...), RoleMember)},
	// unlike the other board-wide entries, full payment history excludes the secretary
	{FnViewAllPaymentRecords, "View All Members and All Payment Records", "Full payment history access",
		[]Role{RoleAdmin, RolePresident, RoleTreasurer, RoleAuditor, RolePIO, RoleBoard}},
}

// FunctionByID looks a Function up in the catalog.
func FunctionByID(id int) (Function, bool) {
	for _, fn := range Functions {
		if fn.ID == id {
			return fn, true
		}
	}
	return Function{}, false
}

// HasAccess reports whether role is allowed to perform the numbered system
// function. Unknown function ids are denied.
func HasAccess(role Role, functionID int) bool {
	fn, ok := FunctionByID(functionID)
	if !ok {
		return false
	}
	for _, r := range fn.AllowedRoles {
		if r == role {
			return true
		}
	}
	return false
}

// AccessibleFunctions returns the catalog entries role may perform.
func AccessibleFunctions(role Role) []Function {
	fns := make([]Function, 0, len(Functions))
	for _, fn := range Functions {
		for _, r := range fn.AllowedRoles {
			if r == role {
				fns = append(fns, fn)
				break
			}
		}
	}
	return fns
}
