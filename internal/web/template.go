package web

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/sweeney/co2-canary/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"severityClass": func(s string) string {
		return strings.ToLower(s)
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>CO2 Canary</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.normal { color: green; font-weight: bold; }
.stuffy { color: #b8860b; font-weight: bold; }
.open_window { color: orange; font-weight: bold; }
.pass_out { color: red; font-weight: bold; }
.recovering { color: teal; font-weight: bold; }
.expired { color: black; background: #f8d7da; font-weight: bold; }
.unknown { color: #888; }
.connected { color: green; }
.disconnected { color: red; }
.banner { background: #f8d7da; padding: 1em; border: 1px solid #c00; }
</style>
</head>
<body>
<h1>CO2 Canary</h1>
{{if .Terminal}}
<p class="banner">The canary has expired. Air the room and restart the device.</p>
{{end}}

<h2>Air</h2>
<table>
<tr><th>Severity</th><td class="{{if .Fields.Severity}}{{severityClass (printf "%s" .Fields.Severity)}}{{else}}unknown{{end}}">{{if .Fields.Severity}}{{.Fields.Severity}}{{else}}UNKNOWN{{end}}</td></tr>
{{if .Fields.HasReading}}
<tr><th>CO2</th><td>{{.Fields.CO2}} ppm</td></tr>
<tr><th>Temperature</th><td>{{printf "%.1f" .Fields.Temperature}} &deg;C</td></tr>
<tr><th>Humidity</th><td>{{printf "%.1f" .Fields.Humidity}} %</td></tr>
<tr><th>VOC index</th><td>{{.Fields.VOCIndex}}</td></tr>
<tr><th>PM2.5</th><td>{{.Fields.PM25}} &micro;g/m&sup3;</td></tr>
{{else}}
<tr><th>Readings</th><td class="unknown">waiting for first message</td></tr>
{{end}}
</table>

<h2>Connectivity</h2>
<table>
<tr><th>Link</th><td class="{{if .Fields.LinkUp}}connected{{else}}disconnected{{end}}">{{if .Fields.LinkUp}}up{{else}}down{{end}}</td></tr>
<tr><th>Session</th><td class="{{if .Fields.SessionUp}}connected{{else}}disconnected{{end}}">{{if .Fields.SessionUp}}up{{else}}down{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
<tr><th>Topic</th><td>{{.Config.Topic}}</td></tr>
</table>

<h2>Reactions</h2>
<table>
<tr><th>Audio</th><td>{{if .Fields.AudioOn}}on{{else}}muted{{end}}</td></tr>
<tr><th>Stuffy</th><td>{{.Fields.Reactions.Stuffy}}</td></tr>
<tr><th>Open window</th><td>{{.Fields.Reactions.OpenWindow}}</td></tr>
<tr><th>Pass out</th><td>{{.Fields.Reactions.PassOut}}</td></tr>
<tr><th>Recovered</th><td>{{.Fields.Reactions.Recovered}}</td></tr>
<tr><th>Expired</th><td>{{.Fields.Reactions.Expired}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Tick</th><td>{{.Config.TickMs}}ms</td></tr>
<tr><th>Thresholds</th><td>{{.Config.Thresholds.Stuffy}} / {{.Config.Thresholds.OpenWindow}} / {{.Config.Thresholds.PassOut}} / {{.Config.Thresholds.Expire}} ppm</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime() method but template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
	}
	indexTmpl.Execute(w, data)
}
