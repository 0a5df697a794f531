package site

import (
	"strings"

	"github.com/a-h/templ"
)

// Page renders the whole lobby document.
func Page(v LobbyView) templ.Component {
	return templ.Join(
		templ.Raw("<!doctype html>"),
		el("html", attrs{kv("lang", "en")},
			el("head", nil,
				void("meta", attrs{kv("charset", "utf-8")}),
				void("meta", attrs{kv("name", "viewport"), kv("content", "width=device-width, initial-scale=1")}),
				el("title", nil, text(Title)),
				void("link", attrs{kv("rel", "stylesheet"), kv("href", safeURL("/static/lobby.css"))}),
			),
			el("body", nil, Header(), Teams(v), Actions(v)),
		),
	)
}

// Header renders the title and description region.
func Header() templ.Component {
	return el("header", nil,
		el("h1", nil, text(Title)),
		el("p", attrs{kv("class", "description")}, text(Description)),
	)
}

// Teams renders the selection grid: a header row, then chooser, icon,
// chooser, icon for every role.
func Teams(v LobbyView) templ.Component {
	grid := []templ.Component{
		el("div", nil, text(BluePrompt)), el("h1", attrs{kv("class", "blue")}, text("Blue")),
		el("div", nil, text(RedPrompt)), el("h1", attrs{kv("class", "red")}, text("Red")),
	}
	for _, row := range v.Rows {
		grid = append(grid,
			Chooser(row.Blue, v.Options), Icon(row.Blue),
			Chooser(row.Red, v.Options), Icon(row.Red),
		)
	}

	var notice templ.Component = templ.NopComponent
	if len(v.Duplicates) > 0 {
		notice = el("p", attrs{kv("class", "notice"), kv("role", "status")},
			text(DuplicateNotice+strings.Join(v.Duplicates, ", ")))
	}
	return el("section", attrs{kv("id", "teams")},
		el("h2", nil, text(TeamsHeader)),
		notice,
		el("div", attrs{kv("class", "grid")}, grid...),
	)
}

// Chooser renders the champion select of one slot. Changing it posts the
// form so the icon follows the selection.
func Chooser(s SlotView, options []string) templ.Component {
	id := "slot-" + string(s.Key)
	opts := make([]templ.Component, len(options))
	for i, opt := range options {
		opts[i] = el("option", attrs{kv("value", opt), kv("selected", opt == s.Champion)}, text(opt))
	}
	return el("form", attrs{kv("class", "slot"), kv("method", "post"), kv("action", safeURL("/select"))},
		void("input", attrs{kv("type", "hidden"), kv("name", "slot"), kv("value", string(s.Key))}),
		el("label", attrs{kv("for", id)}, text(s.Label)),
		el("select", attrs{kv("id", id), kv("name", "champion"), kv("onchange", "this.form.submit()")}, opts...),
		el("noscript", nil, el("button", attrs{kv("type", "submit")}, text("Pick"))),
	)
}

// Icon renders the image of the selected champion captioned with its name.
func Icon(s SlotView) templ.Component {
	class := "icon"
	if s.Icon.Missing {
		class += " missing"
	}
	return el("figure", attrs{kv("class", class), kv("data-path", s.Icon.Path)},
		void("img", attrs{kv("src", safeURL(s.Icon.URL)), kv("alt", s.Champion)}),
		el("figcaption", nil, text(s.Champion)),
	)
}

// Actions renders the prediction button and, once pressed, the verdict.
func Actions(v LobbyView) templ.Component {
	var verdict templ.Component = templ.NopComponent
	if p := v.Prediction; p != nil {
		verdict = templ.Join(
			el("p", nil, text(WinnerLead)),
			el("p", attrs{kv("class", "verdict")}, text(p.Winner)),
			el("p", nil, text(ConfidenceLead+p.Confidence)),
		)
	}
	return el("section", attrs{kv("id", "prediction")},
		el("h2", nil, text(ActionHeader)),
		postButton("/predict", ActionButton),
		verdict,
		postButton("/reset", "Reset"),
	)
}

func postButton(action, label string) templ.Component {
	return el("form", attrs{kv("method", "post"), kv("action", safeURL(action))},
		el("button", attrs{kv("type", "submit")}, text(label)),
	)
}
