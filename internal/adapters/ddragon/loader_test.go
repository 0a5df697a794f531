package ddragon

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/lobby/internal/domain/catalog"
)

// Keys deliberately not in alphabetical order.
const championDoc = `{
  "type": "champion",
  "format": "standAloneComplex",
  "version": "12.14.1",
  "data": {
    "Zed": {"id": "Zed", "key": "238", "name": "Zed"},
    "Aatrox": {"id": "Aatrox", "key": "266", "name": "Aatrox"},
    "MonkeyKing": {"id": "MonkeyKing", "key": "62", "name": "Wukong"},
    "Ahri": {"id": "Ahri", "key": "103", "name": "Ahri"}
  }
}`

func serve(status int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestLoader_Load(t *testing.T) {
	Convey("Given a server returning a champion document", t, func() {
		srv := serve(http.StatusOK, championDoc)
		defer srv.Close()

		Convey("When loading the catalog", func() {
			cat, err := NewLoader(srv.URL).Load(context.Background())

			Convey("Then the keys come back in document order", func() {
				So(err, ShouldBeNil)
				So(cat.IDs(), ShouldResemble, []string{"Zed", "Aatrox", "MonkeyKing", "Ahri"})
			})
		})

		Convey("When loading twice", func() {
			a, _ := NewLoader(srv.URL).Load(context.Background())
			b, _ := NewLoader(srv.URL).Load(context.Background())

			So(a.IDs(), ShouldResemble, b.IDs())
		})
	})

	Convey("Given failing upstreams", t, func() {
		cases := []struct {
			name   string
			status int
			body   string
		}{
			{"a server error", http.StatusInternalServerError, `oops`},
			{"a not found", http.StatusNotFound, `{}`},
			{"malformed json", http.StatusOK, `{"data": {`},
			{"a missing data field", http.StatusOK, `{"type":"champion"}`},
			{"a non-object data field", http.StatusOK, `{"data":["Ahri"]}`},
			{"an empty data object", http.StatusOK, `{"data":{}}`},
		}
		for _, tc := range cases {
			Convey("When the upstream returns "+tc.name, func() {
				srv := serve(tc.status, tc.body)
				defer srv.Close()

				_, err := NewLoader(srv.URL).Load(context.Background())

				So(errors.Is(err, catalog.ErrCatalogUnavailable), ShouldBeTrue)
			})
		}

		Convey("When the host refuses connections", func() {
			srv := serve(http.StatusOK, championDoc)
			url := srv.URL
			srv.Close()

			_, err := NewLoader(url).Load(context.Background())

			So(errors.Is(err, catalog.ErrCatalogUnavailable), ShouldBeTrue)
		})

		Convey("When the upstream hangs past the timeout", func() {
			release := make(chan struct{})
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-release:
				case <-r.Context().Done():
				}
			}))
			defer srv.Close()
			defer close(release)

			start := time.Now()
			_, err := NewLoader(srv.URL, WithTimeout(50*time.Millisecond)).Load(context.Background())

			So(errors.Is(err, catalog.ErrCatalogUnavailable), ShouldBeTrue)
			So(time.Since(start), ShouldBeLessThan, 5*time.Second)
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Given a document with a repeated key", t, func() {
		cat, err := Parse([]byte(`{"data":{"Ahri":{},"Annie":{},"Ahri":{}}}`))

		Convey("Then the first position is kept once", func() {
			So(err, ShouldBeNil)
			So(cat.IDs(), ShouldResemble, []string{"Ahri", "Annie"})
		})
	})
}
