package model

// CryptFunction selects how the login password is transformed before it is
// submitted to the device.
type CryptFunction int

const (
	// CryptMergeHash interleaves the password with the server-provided seed
	// and hashes the result with MD5. Firmwares that render no seed accept
	// the plain password.
	CryptMergeHash CryptFunction = iota
	// CryptHexHMACMD5 pads the password to a 2048-byte block and computes
	// an HMAC-MD5 digest with a fixed key (JGS524Ev2 style).
	CryptHexHMACMD5
)

// StatsEncoding identifies how a firmware renders the port counters.
type StatsEncoding int

const (
	// StatsTableCells: one tr.portID row per port, decimal text cells in
	// rx/tx/crc order. Newer firmwares of the same models switch to hidden
	// hex inputs (rxPkt/txpkt/crcPkt); the parser falls back structurally.
	StatsTableCells StatsEncoding = iota
	// StatsTurnoverPairs: per-row hidden input pairs holding a 32-bit
	// turnover counter and the current value, both decimal.
	StatsTurnoverPairs
	// StatsSplitHiLo: a flat run of hidden inputs, six per port, holding
	// decimal high/low 32-bit halves for rx, tx and crc.
	StatsSplitHiLo
)

// StatusEncoding identifies how a firmware renders the port link status.
type StatusEncoding int

const (
	// StatusTableCells: tr.portID rows with state/mode/speed text cells
	// starting at CellOffset.
	StatusTableCells StatusEncoding = iota
	// StatusPortLists: the GS30x dashboard, one isShowPotN block per port
	// plus parallel Speed/LinkedSpeed input lists.
	StatusPortLists
)

// IdentityEncoding identifies how the switch info page is laid out.
type IdentityEncoding int

const (
	// IdentityLabeled: a switch_name input plus label/value table cells
	// ("Serial Number", "Firmware Version").
	IdentityLabeled IdentityEncoding = iota
	// IdentityDashboard: the GS30x dashboard with ml-coded info spans.
	IdentityDashboard
)

// PoEEncoding identifies how PoE state is rendered.
type PoEEncoding int

const (
	PoENone PoEEncoding = iota
	// PoEHiddenInputs: hidPortPwr admin flags plus poe_port_list_item
	// status blocks (GS30x series).
	PoEHiddenInputs
	// PoEPortWrap: port-wrap blocks with admin-state spans and
	// OutputPower-text paragraphs (GS31x series).
	PoEPortWrap
)

// Profile is the immutable capability record of one switch model. It is
// selected once at detection time; a model change requires a new connector.
type Profile struct {
	ModelID   string
	PortCount int

	PoEPorts         []int
	PoEMaxPowerWatts float64
	// POW_LIMT_TYP form value; differs between the EP and EPP variants.
	PoEPowerLimitType int

	// CounterWidth is the native bit width of the device counters, 32 or 64.
	CounterWidth int

	Crypt       CryptFunction
	LoginPath   string
	LoginField  string
	CookieNames []string
	// GambitAuth models return the session token in a hidden form field and
	// expect it back as a Gambit query parameter instead of a cookie.
	GambitAuth bool
	// HashGuarded models require the client hash scraped from the info page
	// on every POST form.
	HashGuarded bool

	InfoPaths   []string
	StatusPaths []string
	StatsPaths  []string
	LogoutPaths []string

	// HTTP methods for pages that differ across firmware generations. The
	// classic firmwares want hash-guarded POSTs, the newer ones plain GETs.
	StatusMethod string
	StatsMethod  string
	LogoutMethod string

	RebootPath     string
	PoEConfigPath  string
	PoEStatusPath  string
	PoEControlPath string

	StatsEncoding    StatsEncoding
	StatusEncoding   StatusEncoding
	StatusCellOffset int
	IdentityEncoding IdentityEncoding
	PoEEncoding      PoEEncoding

	// Detection markers matched against the login page.
	DetectTitles  []string
	DetectBanners []string
}

// SupportsPoE reports whether the model has any PoE-capable ports.
func (p Profile) SupportsPoE() bool { return len(p.PoEPorts) > 0 }

// IsPoEPort reports whether the given 1-based port is PoE capable.
func (p Profile) IsPoEPort(port int) bool {
	for _, n := range p.PoEPorts {
		if n == port {
			return true
		}
	}
	return false
}

// SupportsReboot reports whether the model exposes a reboot endpoint.
func (p Profile) SupportsReboot() bool { return p.RebootPath != "" }

func portRange(n int) []int {
	ports := make([]int, n)
	for i := range ports {
		ports[i] = i + 1
	}
	return ports
}

// baseProfile carries the defaults shared by the classic E-series models.
func baseProfile(modelID string, ports int) Profile {
	return Profile{
		ModelID:          modelID,
		PortCount:        ports,
		CounterWidth:     32,
		Crypt:            CryptMergeHash,
		LoginPath:        "/login.cgi",
		LoginField:       "password",
		CookieNames:      []string{"SID"},
		InfoPaths:        []string{"/switch_info.htm", "/switch_info.cgi"},
		StatusPaths:      []string{"/status.htm", "/status.cgi"},
		StatsPaths:       []string{"/portStatistics.cgi", "/port_statistics.htm"},
		LogoutPaths:      []string{"/logout.cgi"},
		StatusMethod:     "POST",
		StatsMethod:      "POST",
		LogoutMethod:     "POST",
		HashGuarded:      true,
		StatsEncoding:    StatsTableCells,
		StatusEncoding:   StatusTableCells,
		StatusCellOffset: 2,
		IdentityEncoding: IdentityLabeled,
		DetectTitles:     []string{modelID},
	}
}

// gs105v2Profile: GET-only pages, turnover counter pairs, status cells
// shifted by one column.
func gs105v2Profile(modelID string, ports int) Profile {
	p := baseProfile(modelID, ports)
	p.CounterWidth = 64
	p.HashGuarded = false
	p.StatsEncoding = StatsTurnoverPairs
	p.StatusCellOffset = 3
	p.InfoPaths = []string{"/switch_info.cgi"}
	p.StatusPaths = []string{"/status.cgi"}
	p.StatsPaths = []string{"/portStatistics.cgi"}
	p.StatusMethod = "GET"
	p.StatsMethod = "GET"
	p.LogoutMethod = "GET"
	return p
}

// gs30xProfile: dashboard UI, 64-bit split counters, PoE endpoints.
func gs30xProfile(modelID string, ports int, poePorts []int, maxPower float64, limitType int) Profile {
	p := baseProfile(modelID, ports)
	p.CounterWidth = 64
	p.PoEPorts = poePorts
	p.PoEMaxPowerWatts = maxPower
	p.PoEPowerLimitType = limitType
	p.InfoPaths = []string{"/dashboard.cgi"}
	p.StatusPaths = []string{"/dashboard.cgi"}
	p.StatsPaths = []string{"/portStatistics.cgi"}
	p.StatusMethod = "GET"
	p.StatsMethod = "GET"
	p.StatsEncoding = StatsSplitHiLo
	p.StatusEncoding = StatusPortLists
	p.IdentityEncoding = IdentityDashboard
	p.PoEEncoding = PoEHiddenInputs
	p.PoEConfigPath = "/PoEPortConfig.cgi"
	p.PoEControlPath = "/PoEPortConfig.cgi"
	p.PoEStatusPath = "/getPoePortStatus.cgi"
	p.RebootPath = "/device_reboot.cgi"
	return p
}

// emxProfile: Gambit-token models with the iss page tree.
func emxProfile(modelID string, ports int) Profile {
	p := baseProfile(modelID, ports)
	p.CounterWidth = 64
	p.HashGuarded = false
	p.GambitAuth = true
	p.LoginPath = "/homepage.html"
	p.LoginField = "LoginPassword"
	p.CookieNames = []string{"gambitCookie"}
	p.InfoPaths = []string{"/iss/specific/sysInfo.html"}
	p.StatusPaths = []string{"/iss/specific/port_settings.html"}
	p.StatsPaths = []string{"/iss/specific/interface_stats.html"}
	p.LogoutPaths = []string{"/iss/specific/logout.html"}
	p.StatusMethod = "GET"
	p.StatsMethod = "GET"
	p.LogoutMethod = "GET"
	p.StatusCellOffset = 3
	return p
}

var profiles = buildProfiles()

func buildProfiles() []Profile {
	gs108e := baseProfile("GS108E", 8)
	gs108e.CookieNames = []string{"GS108SID", "SID"}
	gs108e.DetectBanners = []string{
		"GS108E - 8-Port Gigabit ProSAFE Plus Switch",
	}

	gs108ev3 := baseProfile("GS108Ev3", 8)
	gs108ev3.CookieNames = []string{"GS108SID", "SID"}
	gs108ev3.RebootPath = "/device_reboot.cgi"
	gs108ev3.DetectBanners = []string{
		"GS108Ev3 - 8-Port Gigabit ProSAFE Plus Switch",
		"GS108Ev3 - 8-Port Gigabit Ethernet Smart Managed Plus Switch",
	}

	gs308e := baseProfile("GS308E", 8)
	gs308e.CookieNames = []string{"GS108SID", "SID"}
	gs308e.DetectBanners = []string{
		"GS308E - 8-Port Gigabit ProSAFE Plus Switch",
		"GS308E - 8-Port Gigabit Ethernet Smart Managed Plus Switch",
	}

	gs316 := gs30xProfile("GS316EP", 16, portRange(15), 180, 2)
	gs316.GambitAuth = true
	gs316.HashGuarded = false
	gs316.LoginPath = "/homepage.html"
	gs316.LoginField = "LoginPassword"
	gs316.CookieNames = []string{"gambitCookie"}
	gs316.InfoPaths = []string{"/iss/specific/dashboard.html"}
	gs316.StatusPaths = []string{"/iss/specific/dashboard.html"}
	gs316.StatsPaths = []string{"/iss/specific/interface_stats.html"}
	gs316.LogoutPaths = []string{"/iss/specific/logout.html"}
	gs316.LogoutMethod = "GET"
	gs316.StatsEncoding = StatsTableCells
	gs316.StatusEncoding = StatusTableCells
	gs316.StatusCellOffset = 3
	gs316.IdentityEncoding = IdentityLabeled
	gs316.PoEEncoding = PoEPortWrap
	gs316.PoEConfigPath = "/iss/specific/poePortConf.html"
	gs316.PoEControlPath = "/iss/specific/poePortConf.html"
	gs316.PoEStatusPath = "/iss/specific/poePortStatus.html"
	gs316.RebootPath = ""

	gs316epp := gs316
	gs316epp.ModelID = "GS316EPP"
	gs316epp.PoEMaxPowerWatts = 231
	gs316epp.DetectTitles = []string{"GS316EPP"}

	return []Profile{
		baseProfile("GS105E", 5),
		gs105v2Profile("GS105Ev2", 5),
		gs105v2Profile("GS105PE", 5),
		gs108e,
		gs108ev3,
		gs105v2Profile("GS305E", 5),
		gs308e,
		gs30xProfile("GS305EP", 5, portRange(4), 63, 2),
		gs30xProfile("GS305EPP", 5, portRange(4), 120, 2),
		gs30xProfile("GS308EP", 8, portRange(8), 62, 0),
		gs30xProfile("GS308EPP", 8, portRange(8), 123, 2),
		emxProfile("GS110EMX", 10),
		emxProfile("XS512EM", 12),
		gs316,
		gs316epp,
	}
}

// Profiles returns the registered capability profiles.
func Profiles() []Profile {
	out := make([]Profile, len(profiles))
	copy(out, profiles)
	return out
}

// Match returns the profiles whose detection markers match a login page. A
// switch-info banner match is authoritative and wins over title matches,
// mirroring the device's own firmware quirks: old firmwares render a banner
// and a generic title, new firmwares render the model name in the title.
func Match(title, banner string) []Profile {
	var byBanner, byTitle []Profile
	for _, p := range profiles {
		for _, b := range p.DetectBanners {
			if banner != "" && banner == b {
				byBanner = append(byBanner, p)
			}
		}
		for _, t := range p.DetectTitles {
			if title != "" && title == t {
				byTitle = append(byTitle, p)
			}
		}
	}
	if len(byBanner) > 0 {
		return byBanner
	}
	return byTitle
}
