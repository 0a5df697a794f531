package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/okian/lobby/internal/adapters/repository"
	service "github.com/okian/lobby/internal/app"
	"github.com/okian/lobby/internal/domain/catalog"
	"github.com/okian/lobby/internal/domain/prediction"
	"github.com/okian/lobby/internal/domain/roster"
	"github.com/okian/lobby/pkg/logger"
	"github.com/okian/lobby/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

type stubLoader struct {
	ids   []string
	err   error
	calls int
}

func (l *stubLoader) Load(_ context.Context) (catalog.Catalog, error) {
	l.calls++
	if l.err != nil {
		return catalog.Catalog{}, l.err
	}
	return catalog.New(l.ids)
}

func championIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("Champ%02d", i)
	}
	return ids
}

func startedService(opts ...service.Option) (*service.Service, *stubLoader) {
	loader := &stubLoader{ids: championIDs(30)}
	opts = append([]service.Option{service.WithCatalogLoader(loader)}, opts...)
	svc := service.New(opts...)
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	return svc, loader
}

// unpicked returns n catalog champions the roster does not hold yet.
func unpicked(r *roster.Roster, n int) []string {
	held := make(map[string]bool)
	for _, c := range r.Champions() {
		held[c] = true
	}
	var out []string
	for _, id := range championIDs(30) {
		if !held[id] && len(out) < n {
			out = append(out, id)
		}
	}
	return out
}

func duplicateSelections() float64 {
	families, err := metrics.GetRegistry().Gather()
	if err != nil {
		panic(err)
	}
	for _, mf := range families {
		if mf.GetName() == metrics.DefaultNamespace+"_duplicate_selections_total" {
			return mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	return 0
}

func TestService_Start(t *testing.T) {
	Convey("Given a service with a working loader", t, func() {
		ctx := context.Background()
		loader := &stubLoader{ids: championIDs(12)}
		svc := service.New(service.WithCatalogLoader(loader))
		defer svc.Stop()

		Convey("When starting twice", func() {
			So(svc.Start(ctx), ShouldBeNil)
			So(svc.Start(ctx), ShouldBeNil)

			Convey("Then the catalog is fetched once", func() {
				So(loader.calls, ShouldEqual, 1)
				So(svc.Catalog().Len(), ShouldEqual, 12)
				So(svc.GetStats()["started"], ShouldEqual, true)
				So(svc.GetStats()["champions"], ShouldEqual, 12)
			})
		})
	})

	Convey("Given a loader that fails", t, func() {
		loader := &stubLoader{err: fmt.Errorf("%w: boom", catalog.ErrCatalogUnavailable)}
		svc := service.New(service.WithCatalogLoader(loader))

		err := svc.Start(context.Background())

		Convey("Then start fails with the catalog error", func() {
			So(errors.Is(err, catalog.ErrCatalogUnavailable), ShouldBeTrue)
			So(svc.GetStats()["started"], ShouldEqual, false)
		})

		Convey("Then session operations report not started", func() {
			_, err := svc.NewSession(context.Background())
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
		})
	})

	Convey("Given a catalog smaller than a roster", t, func() {
		svc := service.New(service.WithCatalogLoader(&stubLoader{ids: championIDs(9)}))

		err := svc.Start(context.Background())

		So(errors.Is(err, roster.ErrInsufficientCatalogSize), ShouldBeTrue)
	})

	Convey("Given no loader", t, func() {
		err := service.New().Start(context.Background())

		So(errors.Is(err, catalog.ErrCatalogUnavailable), ShouldBeTrue)
	})
}

func TestService_Sessions(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc, _ := startedService(service.WithSeed(1))
		defer svc.Stop()

		Convey("When creating two sessions", func() {
			a, errA := svc.NewSession(ctx)
			b, errB := svc.NewSession(ctx)

			Convey("Then they have distinct ids and the same seeded roster", func() {
				So(errA, ShouldBeNil)
				So(errB, ShouldBeNil)
				So(a.ID, ShouldNotEqual, b.ID)
				So(a.Roster.Slots(), ShouldResemble, b.Roster.Slots())
				So(a.Roster.Duplicates(), ShouldBeEmpty)
				So(a.Prediction, ShouldBeNil)
				So(svc.GetStats()["sessions"], ShouldEqual, 2)
			})
		})

		Convey("When mutating a returned snapshot", func() {
			sess, _ := svc.NewSession(ctx)
			want, _ := sess.Roster.Slot("red-top")
			So(sess.Roster.Select("red-top", "Champ29", svc.Catalog()), ShouldBeNil)
			So(sess.Roster.Select("red-top", "Champ28", svc.Catalog()), ShouldBeNil)

			Convey("Then the stored session is unchanged", func() {
				stored, err := svc.Session(ctx, sess.ID)
				So(err, ShouldBeNil)
				got, _ := stored.Roster.Slot("red-top")
				So(got.Champion, ShouldEqual, want.Champion)
			})
		})

		Convey("When looking up an unknown session", func() {
			_, err := svc.Session(ctx, "missing")

			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("When asking for a session or a new one", func() {
			sess, created, err := svc.SessionOrNew(ctx, "")
			So(err, ShouldBeNil)
			So(created, ShouldBeTrue)

			again, created, err := svc.SessionOrNew(ctx, sess.ID)
			So(err, ShouldBeNil)
			So(created, ShouldBeFalse)
			So(again.ID, ShouldEqual, sess.ID)

			fresh, created, err := svc.SessionOrNew(ctx, "expired-id")
			So(err, ShouldBeNil)
			So(created, ShouldBeTrue)
			So(fresh.ID, ShouldNotEqual, "expired-id")
		})
	})
}

func TestService_SelectAndPredict(t *testing.T) {
	Convey("Given a session", t, func() {
		ctx := context.Background()
		svc, _ := startedService()
		defer svc.Stop()
		sess, err := svc.NewSession(ctx)
		So(err, ShouldBeNil)

		Convey("When selecting a champion", func() {
			updated, err := svc.Select(ctx, sess.ID, "red-sup", "Champ00")

			Convey("Then the slot changes and is persisted", func() {
				So(err, ShouldBeNil)
				slot, _ := updated.Roster.Slot("red-sup")
				So(slot.Champion, ShouldEqual, "Champ00")
				stored, _ := svc.Session(ctx, sess.ID)
				slot, _ = stored.Roster.Slot("red-sup")
				So(slot.Champion, ShouldEqual, "Champ00")
			})
		})

		Convey("When predicting", func() {
			got, err := svc.Predict(ctx, sess.ID)

			Convey("Then the constant verdict is stored", func() {
				So(err, ShouldBeNil)
				So(*got.Prediction, ShouldResemble, prediction.Result{Winner: "BLUE", Confidence: "HIGH"})
			})

			Convey("And re-selecting the current champion keeps the verdict", func() {
				slot, _ := got.Roster.Slot("blue-mid")
				again, err := svc.Select(ctx, sess.ID, "blue-mid", slot.Champion)
				So(err, ShouldBeNil)
				So(again.Prediction, ShouldNotBeNil)
			})

			Convey("And changing a pick clears the verdict", func() {
				changed, err := svc.Select(ctx, sess.ID, "blue-mid", "Champ29")
				So(err, ShouldBeNil)
				So(changed.Prediction, ShouldBeNil)
			})
		})

		Convey("When every slot holds the same champion", func() {
			for _, s := range sess.Roster.Slots() {
				_, err := svc.Select(ctx, sess.ID, s.Key(), "Champ05")
				So(err, ShouldBeNil)
			}
			got, err := svc.Predict(ctx, sess.ID)

			Convey("Then duplicates are accepted and the verdict is unchanged", func() {
				So(err, ShouldBeNil)
				So(got.Roster.Duplicates(), ShouldResemble, []string{"Champ05"})
				So(got.Prediction.Winner, ShouldEqual, "BLUE")
				So(got.Prediction.Confidence, ShouldEqual, "HIGH")
			})
		})

		Convey("When selections create and then sit beside a duplicate", func() {
			unused := unpicked(sess.Roster, 2)
			base := duplicateSelections()

			_, err := svc.Select(ctx, sess.ID, "blue-top", unused[0])
			So(err, ShouldBeNil)
			So(duplicateSelections(), ShouldEqual, base)

			_, err = svc.Select(ctx, sess.ID, "red-top", unused[0])
			So(err, ShouldBeNil)
			So(duplicateSelections(), ShouldEqual, base+1)

			Convey("Then unrelated picks and repeats are not counted", func() {
				_, err := svc.Select(ctx, sess.ID, "blue-mid", unused[1])
				So(err, ShouldBeNil)
				_, err = svc.Select(ctx, sess.ID, "red-top", unused[0])
				So(err, ShouldBeNil)
				So(duplicateSelections(), ShouldEqual, base+1)
			})
		})

		Convey("When selecting invalid input", func() {
			_, err := svc.Select(ctx, sess.ID, "blue-top", "Teemo")
			So(errors.Is(err, roster.ErrUnknownChampion), ShouldBeTrue)

			_, err = svc.Select(ctx, sess.ID, "purple-top", "Champ00")
			So(errors.Is(err, roster.ErrUnknownSlot), ShouldBeTrue)

			_, err = svc.Select(ctx, "missing", "blue-top", "Champ00")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("When resetting after edits", func() {
			_, _ = svc.Select(ctx, sess.ID, "blue-top", "Champ29")
			_, _ = svc.Predict(ctx, sess.ID)
			reset, err := svc.Reset(ctx, sess.ID)

			Convey("Then the initial roster returns and the verdict is gone", func() {
				So(err, ShouldBeNil)
				So(reset.Roster.Slots(), ShouldResemble, sess.Roster.Slots())
				So(reset.Prediction, ShouldBeNil)
			})
		})
	})
}

type failingPredictor struct{}

func (failingPredictor) Predict(context.Context, *roster.Roster) (prediction.Result, error) {
	return prediction.Result{}, errors.New("model offline")
}

func TestService_PredictorError(t *testing.T) {
	Convey("Given a predictor that fails", t, func() {
		ctx := context.Background()
		svc, _ := startedService(service.WithPredictor(failingPredictor{}))
		defer svc.Stop()
		sess, _ := svc.NewSession(ctx)

		_, err := svc.Predict(ctx, sess.ID)

		So(err, ShouldNotBeNil)
		stored, _ := svc.Session(ctx, sess.ID)
		So(stored.Prediction, ShouldBeNil)
	})
}
