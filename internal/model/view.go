package model

// View identifies a screen of the client application.
type View string

const (
	ViewDashboard   View = "DASHBOARD"
	ViewInventory   View = "INVENTORY"
	ViewInward      View = "INWARD"
	ViewOutward     View = "OUTWARD"
	ViewReports     View = "REPORTS"
	ViewSync        View = "SYNC"
	ViewAIAssistant View = "AI_ASSISTANT"
	ViewSettings    View = "SETTINGS"
)

var viewCapabilities = map[View]Capability{
	ViewDashboard:   CapViewDashboard,
	ViewInventory:   CapViewInventory,
	ViewInward:      CapInwardStock,
	ViewOutward:     CapOutwardStock,
	ViewReports:     CapViewReports,
	ViewSync:        CapImportExport,
	ViewAIAssistant: CapViewReports,
	ViewSettings:    CapManageSettings,
}

// RequiredCapability returns the capability needed to open the view.
func (v View) RequiredCapability() (Capability, bool) {
	c, ok := viewCapabilities[v]
	return c, ok
}
