package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"ticketd/internal/model"
)

// Define Helper functions for the templates (priority marks, dates, inline
// images).
var templateFuncs = template.FuncMap{
	"bolts": func(p model.Priority) string {
		switch p {
		case model.PriorityHigh:
			return "⚡ ⚡ ⚡"
		case model.PriorityLow:
			return "⚡"
		default:
			return "⚡ ⚡"
		}
	},
	// Due dates print as MM/DD to keep the slip compact
	"formatDue": func(t time.Time) string {
		return t.Format("01/02")
	},
	"dataURI": func(b []byte) template.URL {
		mime := http.DetectContentType(b)
		return template.URL("data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(b))
	},
}

var taskTemplate = template.Must(template.New("task").Funcs(templateFuncs).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body {
  font-family: 'Microsoft JhengHei UI', 'Segoe UI', 'Segoe UI Emoji', 'Segoe UI Symbol', 'Apple Color Emoji', 'Noto Color Emoji', Arial, sans-serif;
  background-color: white;
  width: {{.WidthPx}}px;
}
.ticket-container { background: white; position: relative; }
.header { text-align: center; margin-bottom: 3px; }
.priority-dots { font-size: 48px; font-weight: bold; margin-top: 4px; color: #000; }
.operator-signature {
  position: absolute; top: 6px; right: 6px;
  font-size: 16px; font-weight: 600; color: #111;
  letter-spacing: 0.5px; text-transform: uppercase; white-space: nowrap;
}
.perforation {
  background: repeating-linear-gradient(to right, #000 0, #000 6px, transparent 6px, transparent 12px);
  height: 3px; margin: 3px 0;
}
.task-title { text-align: center; padding: 8px 0; }
.task-title h1 {
  font-size: 48px; font-weight: bold; line-height: 1.2; color: #000;
  word-wrap: break-word; overflow-wrap: break-word; padding: 0 10px;
}
.dashed-line { border-top: 3px dashed #666; margin: 4px 0; }
.due-date { text-align: center; }
.due-date-text { font-size: 32px; font-weight: bold; color: #000; margin-top: 2px; }
.attachment { margin-top: 8px; text-align: center; padding: 0 6px; }
.attachment img {
  width: 100%; max-height: 720px; border-radius: 6px; border: 2px dashed #666;
  object-fit: contain; display: block; margin: 0 auto;
}
</style>
</head>
<body>
<div class="ticket-container">
  {{if .Signature}}<div class="operator-signature">BY {{.Signature}}</div>{{end}}
  <div class="header">
    <div class="priority-dots">{{bolts .Priority}}</div>
  </div>
  <div class="task-title"><h1>{{.Name}}</h1></div>
  <div class="dashed-line"></div>
  <div class="due-date"><div class="due-date-text">{{formatDue .DueDate}}</div></div>
  {{if .Attachment}}<div class="attachment"><img src="{{dataURI .Attachment}}" alt="Attachment" /></div>{{end}}
  <div class="perforation"></div>
</div>
</body>
</html>
`))

var todolistTemplate = template.Must(template.New("todolist").Funcs(templateFuncs).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body {
  font-family: 'Microsoft JhengHei UI', 'Segoe UI', 'Segoe UI Emoji', 'Segoe UI Symbol', 'Apple Color Emoji', 'Noto Color Emoji', Arial, sans-serif;
  background-color: white;
  width: {{.WidthPx}}px;
}
.ticket-container { background: white; }
.list-title { text-align: center; padding: 6px 0; }
.list-title h1 { font-size: 40px; font-weight: bold; color: #000; word-wrap: break-word; padding: 0 10px; }
.perforation {
  background: repeating-linear-gradient(to right, #000 0, #000 6px, transparent 6px, transparent 12px);
  height: 3px; margin: 3px 0;
}
.items { padding: 8px 10px; }
.item { font-size: 32px; color: #000; padding: 6px 0; border-bottom: 2px dashed #999; }
.item:last-child { border-bottom: none; }
.box { display: inline-block; width: 26px; height: 26px; border: 3px solid #000; margin-right: 12px; vertical-align: middle; }
</style>
</head>
<body>
<div class="ticket-container">
  {{if .Title}}<div class="list-title"><h1>{{.Title}}</h1></div>{{end}}
  <div class="perforation"></div>
  <div class="items">
  {{range .Items}}<div class="item"><span class="box"></span>{{.}}</div>
  {{end}}</div>
  <div class="perforation"></div>
</div>
</body>
</html>
`))

type taskView struct {
	WidthPx    int
	Name       string
	Priority   model.Priority
	DueDate    time.Time
	Signature  string
	Attachment []byte
}

type todolistView struct {
	WidthPx int
	Title   string
	Items   []string
}

// BuildHTML expands the ticket content into the HTML document the backends
// rasterize. RawImage content never reaches this path.
func BuildHTML(content model.TicketContent, widthPx int) (string, error) {
	var buf bytes.Buffer
	switch content.Kind() {
	case model.TicketKindTask:
		t := content.Task
		err := taskTemplate.Execute(&buf, taskView{
			WidthPx:    widthPx,
			Name:       t.Name,
			Priority:   t.Priority,
			DueDate:    t.DueDate,
			Signature:  t.OperatorSignature,
			Attachment: t.Attachment,
		})
		if err != nil {
			return "", fmt.Errorf("execute task template: %w", err)
		}
	case model.TicketKindTodolist:
		t := content.Todolist
		err := todolistTemplate.Execute(&buf, todolistView{
			WidthPx: widthPx,
			Title:   t.Title,
			Items:   t.Items,
		})
		if err != nil {
			return "", fmt.Errorf("execute todolist template: %w", err)
		}
	default:
		return "", fmt.Errorf("content kind %q is not renderable", content.Kind())
	}
	return buf.String(), nil
}
