package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/arcadeboard/internal/adapters/http/api"
	service "github.com/okian/arcadeboard/internal/app"
	"github.com/okian/arcadeboard/internal/cli"
	"github.com/okian/arcadeboard/internal/domain/types"
	"github.com/okian/arcadeboard/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
	"gopkg.in/yaml.v3"
)

const cohortCSV = `Nama Peserta,Status Redeem Kode Akses,# Jumlah Skill Badge yang Diselesaikan,# Jumlah Game Arcade yang Diselesaikan,# Jumlah Game Trivia yang Diselesaikan
Ayu,Yes,44,10,8
Budi,Yes,10,4,4
Citra,No,10,4,4
Dewi,Yes,4,2,1
Eka,Yes,1,-3,0
`

func writeCohort(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cohort.csv")
	if err := os.WriteFile(path, []byte(cohortCSV), 0o600); err != nil {
		t.Fatalf("write cohort: %v", err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ARCADE_CONFIG", "")
	var out, errOut bytes.Buffer
	root := cli.NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestEvaluateCommand(t *testing.T) {
	path := writeCohort(t)

	convey.Convey("Given a cohort export with one invalid row", t, func() {
		convey.Convey("When evaluated with the skip policy as JSON", func() {
			out, err := run(t, "evaluate", path, "--policy", "skip")
			convey.So(err, convey.ShouldBeNil)

			var report types.Report
			convey.So(json.Unmarshal([]byte(out), &report), convey.ShouldBeNil)

			convey.Convey("Then valid rows are scored and the invalid one skipped", func() {
				convey.So(report.Participants, convey.ShouldHaveLength, 4)
				convey.So(report.Skipped, convey.ShouldHaveLength, 1)
				convey.So(report.Skipped[0].Name, convey.ShouldEqual, "Eka")
				convey.So(report.Summary.Leaderboard[0].Name, convey.ShouldEqual, "Ayu")
			})
		})

		convey.Convey("When evaluated with the default fail policy", func() {
			_, err := run(t, "evaluate", path)

			convey.Convey("Then the command fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "record 4")
			})
		})

		convey.Convey("When filtered by status and printed as YAML", func() {
			out, err := run(t, "evaluate", path, "--status", "No", "--format", "yaml")
			convey.So(err, convey.ShouldBeNil)

			var doc map[string]any
			convey.So(yaml.Unmarshal([]byte(out), &doc), convey.ShouldBeNil)

			convey.Convey("Then YAML keys follow the JSON names", func() {
				participants, ok := doc["participants"].([]any)
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(participants, convey.ShouldHaveLength, 1)
				convey.So(doc, convey.ShouldContainKey, "evaluation_id")
			})
		})

		convey.Convey("When printed as a table", func() {
			out, err := run(t, "evaluate", path, "--policy", "skip", "--top", "2", "--format", "table")
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, "POS")
			convey.So(out, convey.ShouldContainSubstring, "Ayu")
			convey.So(out, convey.ShouldNotContainSubstring, "Dewi")
			convey.So(out, convey.ShouldContainSubstring, "skipped #4")
		})

		convey.Convey("When the format is unknown", func() {
			_, err := run(t, "evaluate", path, "--format", "xml")
			convey.So(err, convey.ShouldNotBeNil)
		})

		convey.Convey("When the file is missing", func() {
			_, err := run(t, "evaluate", filepath.Join(t.TempDir(), "none.csv"))
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestExportCommand(t *testing.T) {
	path := writeCohort(t)
	dir := t.TempDir()

	convey.Convey("Given a cohort export", t, func() {
		convey.Convey("When every output is requested", func() {
			xlsxPath := filepath.Join(dir, "report.xlsx")
			csvPath := filepath.Join(dir, "report.csv")
			chartPath := filepath.Join(dir, "points.png")

			out, err := run(t, "export", path, "--policy", "skip",
				"--xlsx", xlsxPath, "--csv", csvPath, "--chart", chartPath)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then each file is written", func() {
				for _, p := range []string{xlsxPath, csvPath, chartPath} {
					info, err := os.Stat(p)
					convey.So(err, convey.ShouldBeNil)
					convey.So(info.Size(), convey.ShouldBeGreaterThan, 0)
					convey.So(out, convey.ShouldContainSubstring, p)
				}
			})
		})

		convey.Convey("When no output is requested", func() {
			_, err := run(t, "export", path)
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(err.Error(), convey.ShouldContainSubstring, "nothing to export")
		})
	})
}

func TestConfigFlag(t *testing.T) {
	path := writeCohort(t)

	convey.Convey("Given a config file that changes the default policy", t, func() {
		cfgPath := filepath.Join(t.TempDir(), "arcade.yaml")
		convey.So(os.WriteFile(cfgPath, []byte("failure_policy: skip\ntop_n: 1\n"), 0o600), convey.ShouldBeNil)

		out, err := run(t, "--config", cfgPath, "evaluate", path)
		convey.So(err, convey.ShouldBeNil)

		var report types.Report
		convey.So(json.Unmarshal([]byte(out), &report), convey.ShouldBeNil)
		convey.So(report.Policy, convey.ShouldEqual, types.PolicySkip)
		convey.So(report.Summary.Leaderboard, convey.ShouldHaveLength, 1)
	})
}

func TestLoadTestCommand(t *testing.T) {
	svc := service.New(service.WithLogger(logger.Discard()), service.WithWorkerCount(2))
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(svc.Stop)
	srv := httptest.NewServer(api.NewServer(svc, svc, api.WithLogger(logger.Discard())).Handler())
	t.Cleanup(srv.Close)

	convey.Convey("Given a running server", t, func() {
		out, err := run(t, "loadtest", "--url", srv.URL, "--batches", "3", "--batch-size", "25", "--workers", "2")

		convey.Convey("Then every batch verifies", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, "batches: 3 ok, 0 failed, 0 inconsistent; participants: 75")
		})
	})
}
