package llm

import (
	"context"
	"log/slog"

	"mediashelf/internal/classify"
	"mediashelf/internal/logging"
	"mediashelf/internal/media"
)

// Strategy adapts the client to the classifier's ambiguous-name fallback.
// Failures are reported as "no answer" so the pipeline degrades to
// quarantine instead of aborting the run.
type Strategy struct {
	client *Client
	logger *slog.Logger
}

// NewStrategy wraps client for use as a classifier fallback.
func NewStrategy(client *Client, logger *slog.Logger) *Strategy {
	return &Strategy{
		client: client,
		logger: logging.NewComponentLogger(logger, "llm"),
	}
}

// ClassifyAmbiguous asks the model to identify file by its filename.
func (s *Strategy) ClassifyAmbiguous(ctx context.Context, file media.File) (classify.Identity, bool) {
	identity, err := s.client.IdentifyMedia(ctx, file.Name())
	if err != nil {
		s.logger.Warn("identification request failed",
			logging.Args(logging.String("file", file.Name()), logging.Error(err))...)
		return classify.Identity{}, false
	}

	mapped, ok := mapIdentity(identity)
	if !ok {
		s.logger.Debug("model could not identify file",
			logging.Args(logging.String("file", file.Name()))...)
		return classify.Identity{}, false
	}
	s.logger.Info("identified ambiguous file",
		logging.Args(
			logging.String("file", file.Name()),
			logging.String("kind", string(mapped.Kind)),
			logging.String("series", mapped.Series),
		)...)
	return mapped, true
}

func mapIdentity(identity MediaIdentity) (classify.Identity, bool) {
	mapped := classify.Identity{Confidence: classify.ConfidenceAI}
	switch identity.Kind {
	case "episode":
		if identity.Series == "" || identity.Episode <= 0 {
			return classify.Identity{}, false
		}
		mapped.Kind = classify.KindEpisode
		mapped.Series = classify.SanitizeName(identity.Series)
		mapped.Season = identity.Season
		mapped.Episode = identity.Episode
		if mapped.Season <= 0 {
			mapped.Season = 1
		}
	case "special":
		if identity.Series == "" {
			return classify.Identity{}, false
		}
		mapped.Kind = classify.KindSpecial
		mapped.Series = classify.SanitizeName(identity.Series)
		mapped.Episode = identity.Episode
	case "ova":
		if identity.Series == "" || identity.Episode <= 0 {
			return classify.Identity{}, false
		}
		mapped.Kind = classify.KindOVA
		mapped.Series = classify.SanitizeName(identity.Series)
		mapped.Episode = identity.Episode
	case "extra":
		if identity.Series == "" || identity.ExtraBucket == "" {
			return classify.Identity{}, false
		}
		mapped.Kind = classify.KindExtra
		mapped.Series = classify.SanitizeName(identity.Series)
		mapped.ExtraKind = identity.ExtraBucket
	case "movie":
		if identity.Title == "" || identity.Year <= 0 {
			return classify.Identity{}, false
		}
		mapped.Kind = classify.KindMovie
		mapped.MovieTitle = classify.SanitizeName(identity.Title)
		mapped.MovieYear = identity.Year
	default:
		return classify.Identity{}, false
	}
	return mapped, true
}
