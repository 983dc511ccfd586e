package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	service "github.com/okian/arcadeboard/internal/app"
	"github.com/okian/arcadeboard/internal/domain/model"
	"github.com/okian/arcadeboard/internal/domain/scoring"
	"github.com/okian/arcadeboard/internal/domain/types"
	"github.com/okian/arcadeboard/internal/testrecords"
	. "github.com/smartystreets/goconvey/convey"
)

func cohort() []model.Record {
	return []model.Record{
		{ID: "a", Name: "Ayu", Status: "Yes", Counts: model.ActivityCounts{SkillBadges: 44, ArcadeGames: 10, TriviaGames: 8}},
		{ID: "b", Name: "Budi", Status: "Yes", Counts: model.ActivityCounts{SkillBadges: 10, ArcadeGames: 4, TriviaGames: 4}},
		{ID: "c", Name: "Citra", Status: "No", Counts: model.ActivityCounts{SkillBadges: 10, ArcadeGames: 4, TriviaGames: 4}},
		{ID: "d", Name: "Dewi", Status: "No", Counts: model.ActivityCounts{SkillBadges: 4, ArcadeGames: 2, TriviaGames: 1}},
	}
}

func withInvalid(records []model.Record) []model.Record {
	out := append([]model.Record(nil), records[:2]...)
	out = append(out, model.Record{ID: "e", Name: "Eko", Counts: model.ActivityCounts{ArcadeGames: -1}})
	return append(out, records[2:]...)
}

func TestService_Evaluate(t *testing.T) {
	svc := newStarted(t, service.WithWorkerCount(3))
	ctx := context.Background()

	Convey("Given a four-participant cohort", t, func() {
		report, err := svc.Evaluate(ctx, types.EvaluateRequest{Records: cohort()})
		So(err, ShouldBeNil)

		Convey("Then participants keep input order and carry ranks", func() {
			So(report.EvaluationID, ShouldNotBeEmpty)
			So(report.Policy, ShouldEqual, types.PolicyFail)
			So(report.Skipped, ShouldBeEmpty)
			So(len(report.Participants), ShouldEqual, 4)

			a, b, c, d := report.Participants[0], report.Participants[1], report.Participants[2], report.Participants[3]
			So(a.ID, ShouldEqual, "a")
			So(a.Breakdown.TotalPoints, ShouldEqual, 65)
			So(a.Rank, ShouldResemble, scoring.RankInfo{OrdinalRank: 1, Percentile: 100, Tier: scoring.RankGrandmaster})
			So(b.Breakdown.TotalPoints, ShouldEqual, 18)
			So(b.Rank, ShouldResemble, scoring.RankInfo{OrdinalRank: 2, Percentile: 75, Tier: scoring.RankChampion})
			So(c.Rank, ShouldResemble, b.Rank)
			So(d.Breakdown.TotalPoints, ShouldEqual, 5)
			So(d.Rank.OrdinalRank, ShouldEqual, 4)
			So(d.Rank.Tier, ShouldEqual, scoring.RankFighter)
		})

		Convey("Then the summary aggregates the whole cohort", func() {
			sum := report.Summary
			So(sum.Participants, ShouldEqual, 4)
			So(sum.Active, ShouldEqual, 4)
			So(sum.Totals.SkillBadges, ShouldResemble, types.Stat{Sum: 68, Mean: 17})
			So(sum.Totals.TriviaGames, ShouldResemble, types.Stat{Sum: 17, Mean: 4.25})
			So(sum.Totals.Points, ShouldResemble, types.Stat{Sum: 106, Mean: 26.5})
			So(sum.Milestones, ShouldResemble, []types.MilestoneCount{
				{Tier: scoring.MilestoneUltimate, Count: 1, Percentage: 25},
				{Tier: scoring.Milestone3, Count: 0, Percentage: 0},
				{Tier: scoring.Milestone2, Count: 0, Percentage: 0},
				{Tier: scoring.Milestone1, Count: 2, Percentage: 50},
				{Tier: scoring.MilestoneNone, Count: 1, Percentage: 25},
			})
			So(sum.BadgeCategories, ShouldResemble, []types.CategoryCount{
				{Label: "Not Started", Count: 0},
				{Label: "Beginner", Count: 1},
				{Label: "Developing", Count: 2},
				{Label: "Proficient", Count: 0},
				{Label: "Expert", Count: 1},
			})
			So(sum.Statuses, ShouldResemble, []types.CategoryCount{
				{Label: "Yes", Count: 2},
				{Label: "No", Count: 2},
			})
		})

		Convey("Then the leaderboard is stable with medals for the podium", func() {
			lb := report.Summary.Leaderboard
			So(len(lb), ShouldEqual, 4)
			So([]string{lb[0].ID, lb[1].ID, lb[2].ID, lb[3].ID}, ShouldResemble, []string{"a", "b", "c", "d"})
			So(lb[0].Medal, ShouldEqual, "gold")
			So(lb[0].Label, ShouldEqual, "🥇 #1")
			So(lb[2].Medal, ShouldEqual, "bronze")
			So(lb[3].Medal, ShouldBeEmpty)
			So(lb[3].Label, ShouldEqual, "#4")
		})

		Convey("Then the histogram covers every participant", func() {
			pts := report.Summary.Points
			So(pts.Min, ShouldEqual, 5)
			So(pts.Max, ShouldEqual, 65)
			total := 0
			for _, b := range pts.Buckets {
				total += b.Count
				So(b.Upper, ShouldBeGreaterThanOrEqualTo, b.Lower)
			}
			So(total, ShouldEqual, 4)
			So(len(pts.Buckets), ShouldBeLessThanOrEqualTo, 20)
			So(pts.Buckets[0].Lower, ShouldEqual, 5)
			So(pts.Buckets[len(pts.Buckets)-1].Upper, ShouldBeGreaterThanOrEqualTo, 65)
		})
	})

	Convey("Given a batch with one negative counter", t, func() {
		records := withInvalid(cohort())

		Convey("When the policy is fail", func() {
			report, err := svc.Evaluate(ctx, types.EvaluateRequest{Records: records, Policy: types.PolicyFail})

			Convey("Then the batch fails naming the record", func() {
				So(report, ShouldBeNil)
				So(errors.Is(err, scoring.ErrInvalidInput), ShouldBeTrue)
				var recErr *service.RecordError
				So(errors.As(err, &recErr), ShouldBeTrue)
				So(recErr.Index, ShouldEqual, 2)
				So(recErr.ID, ShouldEqual, "e")
			})
		})

		Convey("When the policy is skip", func() {
			report, err := svc.Evaluate(ctx, types.EvaluateRequest{Records: records, Policy: types.PolicySkip})
			clean, cleanErr := svc.Evaluate(ctx, types.EvaluateRequest{Records: cohort()})
			So(cleanErr, ShouldBeNil)

			Convey("Then the record is reported and excluded from every aggregate", func() {
				So(err, ShouldBeNil)
				So(report.Skipped, ShouldHaveLength, 1)
				So(report.Skipped[0].Index, ShouldEqual, 2)
				So(report.Skipped[0].ID, ShouldEqual, "e")
				So(report.Skipped[0].Reason, ShouldContainSubstring, "arcade_games")
				So(report.Summary.Skipped, ShouldEqual, 1)

				ignore := cmpopts.IgnoreFields(types.Summary{}, "Skipped")
				So(cmp.Diff(clean.Summary, report.Summary, ignore), ShouldBeEmpty)
				So(cmp.Diff(clean.Participants, report.Participants), ShouldBeEmpty)
			})
		})
	})

	Convey("Given a status filter", t, func() {
		report, err := svc.Evaluate(ctx, types.EvaluateRequest{Records: cohort(), Statuses: []string{"No"}})

		Convey("Then only matching records are ranked", func() {
			So(err, ShouldBeNil)
			So(report.Summary.Participants, ShouldEqual, 2)
			So(report.Participants[0].ID, ShouldEqual, "c")
			So(report.Participants[0].Rank.OrdinalRank, ShouldEqual, 1)
			So(report.Participants[1].Rank.Percentile, ShouldEqual, 50.0)
		})
	})

	Convey("Given leaderboard length requests", t, func() {
		capped := newStarted(t, service.WithMaxTopN(3))

		Convey("Then top_n trims the leaderboard", func() {
			report, err := svc.Evaluate(ctx, types.EvaluateRequest{Records: cohort(), TopN: 2})
			So(err, ShouldBeNil)
			So(report.Summary.Leaderboard, ShouldHaveLength, 2)
		})

		Convey("Then requests above the cap are clamped", func() {
			report, err := capped.Evaluate(ctx, types.EvaluateRequest{Records: cohort(), TopN: 10})
			So(err, ShouldBeNil)
			So(report.Summary.Leaderboard, ShouldHaveLength, 3)
		})

		Convey("Then negative lengths are rejected", func() {
			_, err := svc.Evaluate(ctx, types.EvaluateRequest{Records: cohort(), TopN: -1})
			So(errors.Is(err, scoring.ErrInvalidInput), ShouldBeTrue)
		})
	})

	Convey("Given an unknown failure policy", t, func() {
		_, err := svc.Evaluate(ctx, types.EvaluateRequest{Records: cohort(), Policy: "ignore"})
		So(errors.Is(err, scoring.ErrInvalidInput), ShouldBeTrue)
	})

	Convey("Given an empty batch", t, func() {
		report, err := svc.Evaluate(ctx, types.EvaluateRequest{})

		Convey("Then an empty report is returned", func() {
			So(err, ShouldBeNil)
			So(report.Participants, ShouldBeEmpty)
			So(report.Summary.Points.Buckets, ShouldBeEmpty)
			So(report.Summary.Leaderboard, ShouldBeEmpty)
			So(report.Summary.Milestones[4].Tier, ShouldEqual, scoring.MilestoneNone)
		})
	})

	Convey("Given records without identity", t, func() {
		report, err := svc.Evaluate(ctx, types.EvaluateRequest{Records: []model.Record{{Name: "Anon"}}})
		So(err, ShouldBeNil)
		So(report.Participants[0].ID, ShouldNotBeEmpty)
		So(report.Summary.Active, ShouldEqual, 0)
	})

	Convey("Given a canceled context", t, func() {
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := svc.Evaluate(canceled, types.EvaluateRequest{Records: cohort()})
		So(errors.Is(err, context.Canceled), ShouldBeTrue)
	})
}

func TestService_EvaluateIsDeterministic(t *testing.T) {
	ctx := context.Background()
	records := testrecords.New(42).Records(500)
	single := newStarted(t, service.WithWorkerCount(1))
	parallel := newStarted(t, service.WithWorkerCount(7))

	Convey("Given a generated cohort of 500", t, func() {
		one, err := single.Evaluate(ctx, types.EvaluateRequest{Records: records})
		So(err, ShouldBeNil)
		many, err := parallel.Evaluate(ctx, types.EvaluateRequest{Records: records})
		So(err, ShouldBeNil)

		Convey("Then the worker count does not change the result", func() {
			ignore := cmpopts.IgnoreFields(types.Report{}, "EvaluationID")
			So(cmp.Diff(one, many, ignore), ShouldBeEmpty)
		})

		Convey("Then aggregates partition the population", func() {
			milestones, buckets, tiers := 0, 0, 0
			for _, m := range one.Summary.Milestones {
				milestones += m.Count
			}
			for _, b := range one.Summary.Points.Buckets {
				buckets += b.Count
			}
			for _, rt := range one.Summary.RankTiers {
				tiers += rt.Count
			}
			So(milestones, ShouldEqual, 500)
			So(buckets, ShouldEqual, 500)
			So(tiers, ShouldEqual, 500)
		})

		Convey("Then every rank stays within bounds", func() {
			for _, p := range one.Participants {
				if p.Rank.OrdinalRank < 1 || p.Rank.OrdinalRank > 500 || p.Rank.Percentile <= 0 || p.Rank.Percentile > 100 {
					t.Fatalf("rank out of bounds for %s: %+v", p.ID, p.Rank)
				}
			}
		})
	})
}
