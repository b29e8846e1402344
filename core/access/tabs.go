package access

// Tab identifies a navigation section of the UI.
type Tab string

const (
	TabDashboard      Tab = "dashboard"
	TabRegistration   Tab = "registration"
	TabOfficers       Tab = "officers"
	TabReports        Tab = "reports"
	TabProfile        Tab = "profile"
	TabMilestones     Tab = "milestones"
	TabUserManagement Tab = "user-management"
)

var AllTabs = []Tab{
	TabDashboard,
	TabRegistration,
	TabOfficers,
	TabReports,
	TabProfile,
	TabMilestones,
	TabUserManagement,
}

// tabRule is the visibility rule for a single Tab. Exactly one of the fields
// applies: always-visible, routed through the function catalog, or an explicit
// role list.
type tabRule struct {
	always     bool
	functionID int
	roles      []Role
}

// tabRules keeps navigation visibility in one static table next to the
// function catalog. The officers tab historically bypasses the catalog with an
// explicit role list; that discrepancy is preserved here on purpose so that
// who-sees-what does not change, but it is the single known spot where
// navigation and capability gating disagree.
var tabRules = map[Tab]tabRule{
	TabDashboard:      {always: true},
	TabRegistration:   {functionID: FnAddMembers},
	TabOfficers:       {roles: []Role{RoleAdmin, RolePresident, RoleSecretary, RoleTreasurer}},
	TabReports:        {functionID: FnPrintMemberList},
	TabProfile:        {always: true},
	TabMilestones:     {functionID: FnManageMilestones},
	TabUserManagement: {roles: []Role{RoleAdmin}},
}

// CanViewTab reports whether role may see the given navigation tab.
// Unknown tabs are hidden.
func CanViewTab(role Role, tab Tab) bool {
	rule, ok := tabRules[tab]
	if !ok {
		return false
	}
	switch {
	case rule.always:
		return true
	case rule.functionID != 0:
		return HasAccess(role, rule.functionID)
	default:
		for _, r := range rule.roles {
			if r == role {
				return true
			}
		}
		return false
	}
}

// VisibleTabs returns the navigation tabs role may see, in display order.
func VisibleTabs(role Role) []Tab {
	tabs := make([]Tab, 0, len(AllTabs))
	for _, tab := range AllTabs {
		if CanViewTab(role, tab) {
			tabs = append(tabs, tab)
		}
	}
	return tabs
}
