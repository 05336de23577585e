package classify_test

import (
	"context"
	"testing"

	"mediashelf/internal/classify"
	"mediashelf/internal/logging"
	"mediashelf/internal/media"
	"mediashelf/internal/testsupport"
)

func newFile(path string) media.File {
	return media.File{Path: path, Size: 100}
}

func TestClassifySeasonEpisodeMarkers(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	c := classify.New(cfg, nil, logging.NewNop())

	cases := []struct {
		path    string
		season  int
		episode int
	}{
		{"/inbox/Frieren/Frieren.S02E07.1080p.mkv", 2, 7},
		{"/inbox/Frieren/Frieren 1x02 [SubsPlease].mkv", 1, 2},
		{"/inbox/Frieren/Frieren - 05 (1080p).mkv", 1, 5},
		{"/inbox/Frieren/QualideaCode01.mkv", 1, 1},
	}
	for _, tc := range cases {
		id := c.Classify(context.Background(), newFile(tc.path))
		if id.Kind != classify.KindEpisode {
			t.Fatalf("%s: expected episode, got %s", tc.path, id.Kind)
		}
		if id.Season != tc.season || id.Episode != tc.episode {
			t.Fatalf("%s: got S%02dE%02d, want S%02dE%02d", tc.path, id.Season, id.Episode, tc.season, tc.episode)
		}
		if id.Confidence != classify.ConfidenceRule {
			t.Fatalf("%s: expected rule-matched, got %s", tc.path, id.Confidence)
		}
	}
}

func TestClassifyEpisodeMarkerBeatsExtraKeyword(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	c := classify.New(cfg, nil, logging.NewNop())

	// NCOP in the name must not demote a real episode.
	id := c.Classify(context.Background(), newFile("/inbox/Show/Show NCOP - S01E03.mkv"))
	if id.Kind != classify.KindEpisode {
		t.Fatalf("expected episode, got %s", id.Kind)
	}
	if id.Season != 1 || id.Episode != 3 {
		t.Fatalf("got S%02dE%02d", id.Season, id.Episode)
	}
}

func TestClassifyExtrasBucket(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	c := classify.New(cfg, nil, logging.NewNop())

	id := c.Classify(context.Background(), newFile("/inbox/Show/Show NCOP1.mkv"))
	if id.Kind != classify.KindExtra {
		t.Fatalf("expected extra, got %s", id.Kind)
	}
	if id.ExtraKind != "openings" {
		t.Fatalf("expected openings bucket, got %q", id.ExtraKind)
	}
}

func TestClassifySpecialKeyword(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	c := classify.New(cfg, nil, logging.NewNop())

	id := c.Classify(context.Background(), newFile("/inbox/Show/Show OVA.mkv"))
	if id.Kind != classify.KindSpecial {
		t.Fatalf("expected special, got %s", id.Kind)
	}
	if id.Season != cfg.Rules.SpecialsSeason {
		t.Fatalf("expected specials season %d, got %d", cfg.Rules.SpecialsSeason, id.Season)
	}
}

func TestClassifyDefaultSeasonSubstitution(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithDefaultSeason(3))
	c := classify.New(cfg, nil, logging.NewNop())

	id := c.Classify(context.Background(), newFile("/inbox/Show/Show - 09.mkv"))
	if id.Season != 3 || id.Episode != 9 {
		t.Fatalf("got S%02dE%02d, want S03E09", id.Season, id.Episode)
	}
}

func TestClassifySeriesOverrideAndNoiseStripping(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithSeriesOverride("Shingeki no Kyojin", "Attack on Titan"))
	c := classify.New(cfg, nil, logging.NewNop())

	id := c.Classify(context.Background(), newFile("/inbox/[Judas] Shingeki no Kyojin (1080p x265)/Episode - 01.mkv"))
	if id.Series != "Attack on Titan" {
		t.Fatalf("expected override, got %q", id.Series)
	}

	id = c.Classify(context.Background(), newFile("/inbox/Frieren.S01.1080p.BluRay.x265/Frieren.S01E01.mkv"))
	if id.Series != "Frieren" {
		t.Fatalf("expected noise stripped, got %q", id.Series)
	}
}

func TestClassifyUnresolvedWithoutStrategy(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	c := classify.New(cfg, nil, logging.NewNop())

	id := c.Classify(context.Background(), newFile("/inbox/Show/extras reel.mkv"))
	if id.Resolved() {
		t.Fatalf("expected unresolved, got %+v", id)
	}
	if id.Confidence != classify.ConfidenceUnresolved {
		t.Fatalf("expected unresolved confidence, got %s", id.Confidence)
	}
}

type countingStrategy struct {
	calls  int
	result classify.Identity
	ok     bool
}

func (s *countingStrategy) ClassifyAmbiguous(_ context.Context, _ media.File) (classify.Identity, bool) {
	s.calls++
	return s.result, s.ok
}

func TestClassifyStrategyFallbackIsCached(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	strategy := &countingStrategy{
		result: classify.Identity{Kind: classify.KindOVA, Series: "Show", Episode: 2},
		ok:     true,
	}
	c := classify.New(cfg, strategy, logging.NewNop())

	file := newFile("/inbox/Show/bonus disc content.mkv")
	first := c.Classify(context.Background(), file)
	second := c.Classify(context.Background(), file)

	if strategy.calls != 1 {
		t.Fatalf("expected one strategy call, got %d", strategy.calls)
	}
	if first.Kind != classify.KindOVA || first.Confidence != classify.ConfidenceAI {
		t.Fatalf("unexpected identity: %+v", first)
	}
	if second != first {
		t.Fatalf("cached result differs: %+v vs %+v", second, first)
	}
}

func TestClassifyStrategyRejectionIsCachedAsUnresolved(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	strategy := &countingStrategy{ok: false}
	c := classify.New(cfg, strategy, logging.NewNop())

	file := newFile("/inbox/Show/bonus disc content.mkv")
	for range 3 {
		if id := c.Classify(context.Background(), file); id.Resolved() {
			t.Fatalf("expected unresolved, got %+v", id)
		}
	}
	if strategy.calls != 1 {
		t.Fatalf("expected one strategy call, got %d", strategy.calls)
	}
}

func TestClassifyStrategyResultValidated(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	// Movie without a year is incomplete and must not be accepted.
	strategy := &countingStrategy{
		result: classify.Identity{Kind: classify.KindMovie, MovieTitle: "Some Film"},
		ok:     true,
	}
	c := classify.New(cfg, strategy, logging.NewNop())

	id := c.Classify(context.Background(), newFile("/inbox/Films/weird capture.mkv"))
	if id.Resolved() {
		t.Fatalf("expected unresolved for incomplete movie identity, got %+v", id)
	}
}

func TestSanitizeName(t *testing.T) {
	if got := classify.SanitizeName(`A<b>:c/d\e|f?g*h"`); got != "A b c d e f g h" {
		t.Fatalf("unexpected sanitized name: %q", got)
	}
}

func TestNormalizeSeriesTitleCasing(t *testing.T) {
	if got := classify.NormalizeSeriesTitle("frieren.beyond.journeys.end"); got != "Frieren Beyond Journeys End" {
		t.Fatalf("unexpected title: %q", got)
	}
	if got := classify.NormalizeSeriesTitle("[SubsPlease] Sousou no Frieren (1080p)"); got != "Sousou no Frieren" {
		t.Fatalf("unexpected title: %q", got)
	}
}
