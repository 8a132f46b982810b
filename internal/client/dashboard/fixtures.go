package dashboard

// Tone selects the color a value is drawn with.
type Tone int

const (
	ToneNeutral Tone = iota
	ToneSuccess
	ToneWarning
	ToneCritical
)

type StatCard struct {
	Title string
	Value string
	Note  string
	Tone  Tone
}

// DetectionRow is one protection feature with its coverage in percent.
type DetectionRow struct {
	Name     string
	Status   string
	Coverage int
}

type RecentAlert struct {
	Title  string
	Detail string
	Time   string
	Tone   Tone
}

type ServiceStatus struct {
	Name   string
	Status string
}

// ThreatCode is an entry of the USSD threat database.
type ThreatCode struct {
	Code        string
	Severity    string
	Description string
	Tone        Tone
}

type Device struct {
	Name     string
	Status   string
	LastSeen string
	Tone     Tone
}

type Alert struct {
	Type    string
	Message string
	Time    string
	Tone    Tone
}

var StatCards = []StatCard{
	{Title: "Protected Devices", Value: "12", Note: "+2 from last week", Tone: ToneSuccess},
	{Title: "Blocked Attempts", Value: "847", Note: "+12% from last month", Tone: ToneSuccess},
	{Title: "System Health", Value: "98.5%", Note: "Uptime this month", Tone: ToneNeutral},
}

var DetectionRows = []DetectionRow{
	{Name: "USSD Monitoring", Status: "Active", Coverage: 100},
	{Name: "Call Forward Detection", Status: "Active", Coverage: 100},
	{Name: "SIM Swap Protection", Status: "Active", Coverage: 95},
}

var RecentAlerts = []RecentAlert{
	{Title: "Suspicious USSD Code", Detail: "*21*+1234567890# blocked", Time: "2 minutes ago", Tone: ToneCritical},
	{Title: "Call Forward Attempt", Detail: "Device: iPhone 14 Pro", Time: "15 minutes ago", Tone: ToneWarning},
	{Title: "Threat Neutralized", Detail: "Malicious code blocked", Time: "1 hour ago", Tone: ToneSuccess},
}

var ServiceStatuses = []ServiceStatus{
	{Name: "USSD Detection", Status: "Online"},
	{Name: "Call Forward Protection", Status: "Active"},
	{Name: "Threat Analysis", Status: "Running"},
}

var KnownThreats = []ThreatCode{
	{Code: "*21*", Severity: "Critical", Description: "Call Forward", Tone: ToneCritical},
	{Code: "*67*", Severity: "Critical", Description: "Conditional Forward", Tone: ToneCritical},
	{Code: "*#21#", Severity: "Medium", Description: "Check Status", Tone: ToneWarning},
	{Code: "*#06#", Severity: "Safe", Description: "IMEI Check", Tone: ToneSuccess},
}

const (
	ThreatDatabaseUpdated  = "Updated 2 hours ago"
	ThreatDatabasePatterns = "1,247 known threat patterns"
)

var Devices = []Device{
	{Name: "iPhone 14 Pro", Status: "Protected", LastSeen: "2 minutes ago", Tone: ToneSuccess},
	{Name: "Samsung Galaxy S23", Status: "Protected", LastSeen: "5 minutes ago", Tone: ToneSuccess},
	{Name: "Google Pixel 7", Status: "Warning", LastSeen: "1 hour ago", Tone: ToneWarning},
}

var Alerts = []Alert{
	{Type: "Critical", Message: "Unauthorized call forwarding attempt blocked", Time: "2 minutes ago", Tone: ToneCritical},
	{Type: "Warning", Message: "Suspicious USSD code detected and neutralized", Time: "15 minutes ago", Tone: ToneWarning},
	{Type: "Info", Message: "Device security scan completed successfully", Time: "1 hour ago", Tone: ToneSuccess},
}
