package site

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// attrs is an ordered attribute list. Values go through
// templ.RenderAttributes: strings are escaped, false bools are dropped and
// true bools render as bare flags.
type attrs = templ.OrderedAttributes

func kv(key string, value any) templ.KeyValue[string, any] {
	return templ.KeyValue[string, any]{Key: key, Value: value}
}

// el renders <tag attrs>children</tag>.
func el(tag string, a attrs, children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := void(tag, a).Render(ctx, w); err != nil {
			return err
		}
		if err := templ.Join(children...).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</"+tag+">")
		return err
	})
}

// void renders an element that has no closing tag.
func void(tag string, a attrs) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<"+tag); err != nil {
			return err
		}
		if err := templ.RenderAttributes(ctx, w, a); err != nil {
			return err
		}
		_, err := io.WriteString(w, ">")
		return err
	})
}

// text renders escaped character data.
func text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, templ.EscapeString(s))
		return err
	})
}

// safeURL sanitizes a link target; anything but http(s), mailto, tel, ftp or a
// relative path becomes templ.FailedSanitizationURL.
func safeURL(s string) string {
	return string(templ.URL(s))
}
