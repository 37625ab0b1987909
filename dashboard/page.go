package dashboard

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
)

var pageFuncs = template.FuncMap{
	"json": func(v interface{}) string {
		data, err := json.Marshal(v)
		if err != nil {
			return "null"
		}
		return string(data)
	},
	"same": func(a, b interface{}) bool {
		return a != nil && b != nil && fmt.Sprint(a) == fmt.Sprint(b)
	},
	"lo": func(v interface{}) interface{} { return rangeBound(v, 0) },
	"hi": func(v interface{}) interface{} { return rangeBound(v, 1) },
}

func rangeBound(v interface{}, i int) interface{} {
	switch t := v.(type) {
	case []float64:
		if len(t) > i {
			return t[i]
		}
	case []interface{}:
		if len(t) > i {
			return t[i]
		}
	}
	return nil
}

var pageTemplate = template.Must(template.New("page").Funcs(pageFuncs).Parse(tmplPage))

// WritePage отрисовывает страницу дашборда
func WritePage(w io.Writer, app *App) error {
	return pageTemplate.Execute(w, app.Layout)
}

const tmplPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>{{.Title}}</title>
<style>
body{font-family:sans-serif;margin:16px;color:#222}
h1{text-align:center;color:#503D36}
.control{margin:8px 0;font-size:18px}
.control select,.control input{font-size:18px;padding:3px;min-width:40%}
.control select:disabled{background:#eee}
.marks{font-size:12px;color:#666}
.region{margin-top:16px}
.chart-item{display:flex;gap:8px}
.chart-item figure{flex:1;margin:0}
figure img{max-width:100%}
.error{color:#b00020;font-family:monospace;white-space:pre-wrap}
</style>
</head>
<body>
<h1>{{.Heading}}</h1>
{{range .Controls}}
<div class="control">
  {{if .Label}}<label for="{{.ID}}">{{.Label}}</label>{{end}}
  {{if eq .Kind "dropdown"}}
  {{$cur := .Value}}
  <select id="{{.ID}}" data-kind="dropdown"{{if .Disabled}} disabled{{end}}>
    <option value="null">{{if .Placeholder}}{{.Placeholder}}{{else}}&mdash;{{end}}</option>
    {{range .Options}}<option value="{{json .Value}}"{{if same .Value $cur}} selected{{end}}>{{.Label}}</option>
    {{end}}
  </select>
  {{else if eq .Kind "input"}}
  <input id="{{.ID}}" data-kind="input" type="{{if .InputType}}{{.InputType}}{{else}}text{{end}}" value="{{.Value}}"{{if .Disabled}} disabled{{end}}>
  {{else if eq .Kind "range"}}
  <span id="{{.ID}}" data-kind="range">
    <input class="lo" type="number" min="{{.Min}}" max="{{.Max}}" step="{{.Step}}" value="{{lo .Value}}">
    &ndash;
    <input class="hi" type="number" min="{{.Min}}" max="{{.Max}}" step="{{.Step}}" value="{{hi .Value}}">
  </span>
  <div class="marks">{{range .Marks}}<span>{{.Label}}</span> {{end}}</div>
  {{end}}
</div>
{{end}}
{{range .Regions}}
<div class="region" id="region-{{.ID}}" data-property="{{.Property}}"></div>
{{end}}
<script>
(function(){
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var socket = new WebSocket(proto + location.host + "/ws");

  function controlValue(el){
    var kind = el.getAttribute("data-kind");
    if (kind === "dropdown") { return JSON.parse(el.value); }
    if (kind === "range") {
      return [parseFloat(el.querySelector(".lo").value), parseFloat(el.querySelector(".hi").value)];
    }
    return el.value;
  }

  document.querySelectorAll("[data-kind]").forEach(function(el){
    el.addEventListener("change", function(){
      socket.send(JSON.stringify({type: "input", id: el.id, value: controlValue(el)}));
    });
  });

  function figureNode(fig){
    var node = document.createElement("figure");
    var img = document.createElement("img");
    img.src = fig.image;
    img.alt = fig.title;
    node.appendChild(img);
    return node;
  }

  function apply(u){
    if (u.target.property === "disabled") {
      var ctl = document.getElementById(u.target.id);
      if (ctl && !u.error) { ctl.disabled = !!u.value; }
      return;
    }
    var region = document.getElementById("region-" + u.target.id);
    if (!region) { return; }
    region.innerHTML = "";
    if (u.error) {
      var err = document.createElement("div");
      err.className = "error";
      err.textContent = u.error;
      region.appendChild(err);
      return;
    }
    if (!u.value) { return; }
    if (Array.isArray(u.value)) {
      u.value.forEach(function(row){
        var line = document.createElement("div");
        line.className = "chart-item";
        row.forEach(function(fig){ line.appendChild(figureNode(fig)); });
        region.appendChild(line);
      });
      return;
    }
    region.appendChild(figureNode(u.value));
  }

  socket.onmessage = function(ev){
    var msg = JSON.parse(ev.data);
    if (msg.type === "update") { msg.updates.forEach(apply); }
    if (msg.type === "error") { console.error(msg.error); }
  };
  setInterval(function(){
    if (socket.readyState === 1) { socket.send(JSON.stringify({type: "ping"})); }
  }, 30000);
})();
</script>
</body>
</html>
`
