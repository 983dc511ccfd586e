package config_test

import (
	"context"
	"errors"
	"os"
	"runtime"
	"testing"

	"github.com/okian/arcadeboard/internal/config"
	"github.com/okian/arcadeboard/internal/domain/scoring"
	"github.com/okian/arcadeboard/internal/domain/types"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU())
				convey.So(cfg.TopN, convey.ShouldEqual, 15)
				convey.So(cfg.Rules, convey.ShouldResemble, scoring.DefaultRules())
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("ARCADE_ADDR", ":8080")
			_ = os.Setenv("ARCADE_WORKER_COUNT", "16")
			_ = os.Setenv("ARCADE_FAILURE_POLICY", "skip")
			_ = os.Setenv("ARCADE_TOP_N", "10")
			_ = os.Setenv("ARCADE_RULES__SKILL_BADGES_PER_POINT", "4")
			_ = os.Setenv("ARCADE_RULES__LEVEL__UNSTARTED_XP_TO_NEXT", "50")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 16)
				convey.So(cfg.FailurePolicy, convey.ShouldEqual, types.PolicySkip)
				convey.So(cfg.TopN, convey.ShouldEqual, 10)
				convey.So(cfg.Rules.SkillBadgesPerPoint, convey.ShouldEqual, 4)
				convey.So(cfg.Rules.Level.UnstartedXPToNext, convey.ShouldEqual, 50)
				convey.So(cfg.Rules.Milestones, convey.ShouldResemble, scoring.DefaultRules().Milestones)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
worker_count: 24
histogram_buckets: 10
rules:
  milestones:
    - tier: "Bronze"
      min_arcade: 2
      min_trivia: 2
      min_skill_badges: 4
      bonus: 3
    - tier: "Gold"
      min_arcade: 5
      min_trivia: 5
      min_skill_badges: 10
      bonus: 8
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("ARCADE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 24)
				convey.So(cfg.HistogramBuckets, convey.ShouldEqual, 10)
			})

			convey.Convey("Then the milestone table is replaced, not merged", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Rules.Milestones, convey.ShouldResemble, []scoring.MilestoneRule{
					{Tier: "Bronze", MinArcade: 2, MinTrivia: 2, MinSkillBadges: 4, Bonus: 3},
					{Tier: "Gold", MinArcade: 5, MinTrivia: 5, MinSkillBadges: 10, Bonus: 8},
				})
				convey.So(cfg.Rules.RankTiers, convey.ShouldResemble, scoring.DefaultRules().RankTiers)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
worker_count: 24
top_n: 20
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("ARCADE_CONFIG", tmpFile)
			_ = os.Setenv("ARCADE_ADDR", ":8080")      // This should override the file
			_ = os.Setenv("ARCADE_WORKER_COUNT", "32") // This should override the file
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 32)
				convey.So(cfg.TopN, convey.ShouldEqual, 20)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("ARCADE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("ARCADE_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("ARCADE_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an unknown failure policy", func() {
			_ = os.Setenv("ARCADE_FAILURE_POLICY", "ignore")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("ARCADE_WORKER_COUNT", "not_a_number")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the rules in the file are inconsistent", func() {
			yamlContent := `
rules:
  milestones:
    - tier: "Gold"
      min_arcade: 5
      min_trivia: 5
      min_skill_badges: 10
      bonus: 8
    - tier: "Bronze"
      min_arcade: 2
      min_trivia: 2
      min_skill_badges: 4
      bonus: 3
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			cfg, err := config.LoadFile(ctx, tmpFile)

			convey.Convey("Then both the config and rules errors match", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(errors.Is(err, scoring.ErrInvalidRules), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with YAML file containing comments", func() {
			yamlContent := `
# This is a comment
addr: ":9090"  # Inline comment
log_format: json
# Another comment
max_batch_size: 500
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			cfg, err := config.LoadFile(ctx, tmpFile)

			convey.Convey("Then it should parse YAML with comments", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.MaxBatchSize, convey.ShouldEqual, 500)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"ARCADE_CONFIG",
		"ARCADE_ADDR",
		"ARCADE_WORKER_COUNT",
		"ARCADE_FAILURE_POLICY",
		"ARCADE_TOP_N",
		"ARCADE_RULES__SKILL_BADGES_PER_POINT",
		"ARCADE_RULES__LEVEL__UNSTARTED_XP_TO_NEXT",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "arcade-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
