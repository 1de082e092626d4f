package tools

// Static fleet inventory backing the dashboard tools. These are fixtures
// standing in for a real control plane, not a data model.

type nodeInfo struct {
	Status  string
	Version string
	Load    float64
}

var fleetNodes = map[string]nodeInfo{
	"edge-01": {Status: "online", Version: "v2.4.1", Load: 0.42},
	"edge-02": {Status: "degraded", Version: "v2.4.1", Load: 0.87},
	"edge-03": {Status: "online", Version: "v2.3.9", Load: 0.18},
	"core-01": {Status: "online", Version: "v2.5.0", Load: 0.35},
}

var recentLogs = []string{
	"[09:12:04] edge-01: health check passed",
	"[09:13:30] core-01: config sync completed (rev 8812)",
	"[09:15:57] edge-02: load above threshold (0.87)",
	"[09:17:21] edge-03: rolled back canary v2.4.2",
	"[09:20:45] core-01: certificate rotation scheduled",
	"[09:24:02] edge-01: deployment slot drained",
	"[09:26:38] edge-02: retrying telemetry upload (attempt 2)",
	"[09:31:10] core-01: fleet-wide policy refresh pushed",
}

const complianceScore = 94
