package loadtest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/arcadeboard/internal/adapters/http/api"
	service "github.com/okian/arcadeboard/internal/app"
	"github.com/okian/arcadeboard/internal/domain/model"
	"github.com/okian/arcadeboard/internal/domain/scoring"
	"github.com/okian/arcadeboard/internal/domain/types"
	"github.com/okian/arcadeboard/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func newTarget(t *testing.T) *httptest.Server {
	t.Helper()
	if err := logger.Init(logger.WithWriter(&discard{})); err != nil {
		t.Fatalf("init logger: %v", err)
	}
	svc := service.New(service.WithLogger(logger.Discard()), service.WithWorkerCount(3))
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(svc.Stop)

	srv := httptest.NewServer(api.NewServer(svc, svc, api.WithLogger(logger.Discard())).Handler())
	t.Cleanup(srv.Close)
	return srv
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func TestRun(t *testing.T) {
	srv := newTarget(t)

	convey.Convey("Given a running scoring server", t, func() {
		cfg := &Config{
			BaseURL:    srv.URL,
			Batches:    6,
			BatchSize:  40,
			Workers:    3,
			Timeout:    5 * time.Second,
			Seed:       7,
			OutputFile: filepath.Join(t.TempDir(), "out", "batches.json"),
		}

		stats, err := Run(context.Background(), cfg)

		convey.Convey("Then every batch succeeds and verifies", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(stats.BatchesSubmitted, convey.ShouldEqual, 6)
			convey.So(stats.BatchesSucceeded, convey.ShouldEqual, 6)
			convey.So(stats.BatchesFailed, convey.ShouldEqual, 0)
			convey.So(stats.ParticipantsEvaluated, convey.ShouldEqual, 240)
			convey.So(stats.Duration, convey.ShouldBeGreaterThan, 0)
		})

		convey.Convey("Then the generated batches are saved", func() {
			info, statErr := os.Stat(cfg.OutputFile)
			convey.So(statErr, convey.ShouldBeNil)
			convey.So(info.Size(), convey.ShouldBeGreaterThan, 0)
		})
	})

	convey.Convey("Given a server that is down", t, func() {
		down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer down.Close()

		_, err := Run(context.Background(), &Config{BaseURL: down.URL, Batches: 1, BatchSize: 1, Workers: 1, Timeout: time.Second})
		convey.So(errors.Is(err, ErrUnhealthy), convey.ShouldBeTrue)
	})

	convey.Convey("Given a server that rejects batches", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
		mux.HandleFunc("/v1/evaluate", func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, `{"code":"internal"}`, http.StatusInternalServerError)
		})
		bad := httptest.NewServer(mux)
		defer bad.Close()

		stats, err := Run(context.Background(), &Config{BaseURL: bad.URL, Batches: 3, BatchSize: 2, Workers: 2, Timeout: time.Second})
		convey.So(errors.Is(err, ErrBatchesFailed), convey.ShouldBeTrue)
		convey.So(stats.BatchesFailed, convey.ShouldEqual, 3)
	})
}

func TestVerifyReport(t *testing.T) {
	records := []model.Record{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	participant := func(id string, total, rank int) types.Participant {
		p := types.Participant{ID: id, Rank: scoring.RankInfo{OrdinalRank: rank}}
		p.Breakdown.TotalPoints = total
		return p
	}
	valid := func() *types.Report {
		return &types.Report{
			EvaluationID: "x",
			Participants: []types.Participant{participant("a", 10, 1), participant("b", 5, 2), participant("c", 5, 2)},
			Summary: types.Summary{
				Participants: 3,
				Leaderboard: []types.Entry{
					{Position: 1, ID: "a", Points: 10},
					{Position: 2, ID: "b", Points: 5},
					{Position: 3, ID: "c", Points: 5},
				},
			},
		}
	}

	convey.Convey("Given a consistent report", t, func() {
		convey.So(verifyReport(records, valid()), convey.ShouldBeNil)
	})

	convey.Convey("Given inconsistent reports", t, func() {
		cases := map[string]func(r *types.Report){
			"tied totals ranked apart": func(r *types.Report) { r.Participants[2].Rank.OrdinalRank = 3 },
			"order changed":            func(r *types.Report) { r.Participants[0], r.Participants[1] = r.Participants[1], r.Participants[0] },
			"participant dropped":      func(r *types.Report) { r.Participants = r.Participants[:2] },
			"summary mismatch":         func(r *types.Report) { r.Summary.Participants = 2 },
			"leaderboard unsorted":     func(r *types.Report) { r.Summary.Leaderboard[1].Points = 11 },
			"leaderboard gap":          func(r *types.Report) { r.Summary.Leaderboard[2].Position = 4 },
			"missing id":               func(r *types.Report) { r.EvaluationID = "" },
		}
		for name, mutate := range cases {
			r := valid()
			mutate(r)
			err := verifyReport(records, r)
			convey.So(errors.Is(err, ErrInconsistent), convey.ShouldBeTrue)
			if err == nil {
				t.Errorf("%s: expected error", name)
			}
		}
	})
}
