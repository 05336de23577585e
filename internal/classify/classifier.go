package classify

import (
	"context"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"mediashelf/internal/config"
	"mediashelf/internal/logging"
	"mediashelf/internal/media"
)

// Strategy is an optional external classifier consulted when the filename
// rules are inconclusive. Implementations may be nondeterministic; the
// classifier caches results per input within a run to preserve determinism.
type Strategy interface {
	ClassifyAmbiguous(ctx context.Context, file media.File) (Identity, bool)
}

// Classifier maps candidate files to destination identities using
// deterministic filename rules with an optional Strategy fallback.
type Classifier struct {
	cfg      *config.Config
	strategy Strategy
	logger   *slog.Logger

	mu    sync.Mutex
	cache map[string]Identity
}

// New constructs a Classifier. strategy may be nil.
func New(cfg *config.Config, strategy Strategy, logger *slog.Logger) *Classifier {
	return &Classifier{
		cfg:      cfg,
		strategy: strategy,
		logger:   logging.NewComponentLogger(logger, "classify"),
		cache:    make(map[string]Identity),
	}
}

// Classify resolves the identity for one file. Identical filename plus
// identical config always yields an identical identity; the injected
// strategy is the only source of nondeterminism and its result is cached
// per path for the duration of the run.
func (c *Classifier) Classify(ctx context.Context, file media.File) Identity {
	series := canonicalSeriesName(inferSeriesFromContext(file), c.cfg.Series.Overrides)
	identity := c.localIdentity(file, series)
	if identity.Resolved() {
		return identity
	}

	if c.strategy == nil {
		c.logger.Debug("identity unresolved, no fallback strategy",
			logging.Args(logging.String("file", file.Name()))...)
		return identity
	}

	if cached, ok := c.cachedStrategyResult(ctx, file); ok {
		return cached
	}
	return identity
}

func (c *Classifier) cachedStrategyResult(ctx context.Context, file media.File) (Identity, bool) {
	c.mu.Lock()
	if cached, ok := c.cache[file.Path]; ok {
		c.mu.Unlock()
		return cached, cached.Resolved()
	}
	c.mu.Unlock()

	identity, ok := c.strategy.ClassifyAmbiguous(ctx, file)
	if !ok || !validStrategyIdentity(identity) {
		// Negative results are cached too so a flaky strategy cannot flip
		// the answer mid-run.
		identity = Identity{Kind: KindUnknown, Confidence: ConfidenceUnresolved}
		ok = false
	} else {
		identity.Confidence = ConfidenceAI
		identity.Series = SanitizeName(identity.Series)
		c.logger.Debug("identity resolved by fallback strategy",
			logging.Args(logging.String("file", file.Name()), logging.String("kind", string(identity.Kind)))...)
	}

	c.mu.Lock()
	c.cache[file.Path] = identity
	c.mu.Unlock()
	return identity, ok
}

// localIdentity applies the deterministic filename rules.
func (c *Classifier) localIdentity(file media.File, series string) Identity {
	kind := classifyKind(file.Name())

	identity := Identity{Kind: kind, Series: series, Confidence: ConfidenceRule}
	switch kind {
	case KindEpisode:
		season, episode, ok := parseSeasonEpisode(file.Stem(), c.cfg.Rules.DefaultSeason)
		if !ok {
			return Identity{Kind: KindUnknown, Series: series, Confidence: ConfidenceUnresolved}
		}
		identity.Season = season
		identity.Episode = episode
	case KindSpecial:
		identity.Season = c.cfg.Rules.SpecialsSeason
	case KindExtra:
		identity.ExtraKind = extrasBucket(file.Name(), c.cfg.Rules.ExtrasMap)
	}
	return identity
}

// inferSeriesFromContext derives the raw series name from the parent
// directory, which release layouts name after the series.
func inferSeriesFromContext(file media.File) string {
	return filepath.Base(file.Dir())
}

// classifyKind decides the content variant from the filename alone. A real
// episode marker (S01E02, 1x02, " - 02") always wins so OP/ED/SP keywords
// inside an episode name never push it into specials or extras.
func classifyKind(filename string) Kind {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	if reSeasonEpisode.MatchString(stem) || reCrossEpisode.MatchString(stem) || reDashEpisode.MatchString(stem) {
		return KindEpisode
	}

	upper := strings.ToUpper(filename)
	for _, keyword := range specialKeywords {
		if strings.Contains(upper, keyword) {
			return KindSpecial
		}
	}
	for _, keyword := range extraKeywords {
		if strings.Contains(upper, keyword) {
			return KindExtra
		}
	}
	return KindEpisode
}

// parseSeasonEpisode extracts season and episode numbers from a filename
// stem, substituting defaultSeason when only an episode marker is present.
func parseSeasonEpisode(stem string, defaultSeason int) (season, episode int, ok bool) {
	if m := reSeasonEpisode.FindStringSubmatch(stem); m != nil {
		return atoi(m[1]), atoi(m[2]), true
	}
	if m := reCrossEpisode.FindStringSubmatch(stem); m != nil {
		return atoi(m[1]), atoi(m[2]), true
	}
	if m := reDashEpisode.FindStringSubmatch(stem); m != nil {
		return defaultSeason, atoi(m[1]), true
	}
	if m := reGluedEpisode.FindStringSubmatch(strings.ReplaceAll(stem, ".", "")); m != nil {
		if ep := atoi(m[1]); ep >= 1 && ep <= 99 {
			return defaultSeason, ep, true
		}
	}
	// Last resort: the first standalone number in the stem.
	if m := reAnyNumber.FindStringSubmatch(stem); m != nil {
		if ep := atoi(m[1]); ep >= 1 && ep <= 400 {
			return defaultSeason, ep, true
		}
	}
	return 0, 0, false
}

// extrasBucket maps the first configured keyword found in the filename to
// its bucket folder, defaulting to "other".
func extrasBucket(filename string, extrasMap map[string]string) string {
	upper := strings.ToUpper(filename)
	for _, keyword := range sortedKeys(extrasMap) {
		if strings.Contains(upper, keyword) {
			return extrasMap[keyword]
		}
	}
	return "other"
}

// validStrategyIdentity rejects strategy results missing the fields their
// kind requires.
func validStrategyIdentity(identity Identity) bool {
	if strings.TrimSpace(identity.Series) == "" && identity.Kind != KindMovie {
		return false
	}
	switch identity.Kind {
	case KindEpisode:
		return identity.Episode > 0
	case KindOVA:
		return identity.Episode > 0
	case KindMovie:
		return strings.TrimSpace(identity.MovieTitle) != "" && identity.MovieYear > 0
	case KindSpecial, KindExtra:
		return true
	default:
		return false
	}
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
