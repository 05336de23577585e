package plan

import (
	"fmt"
	"path/filepath"

	"mediashelf/internal/classify"
	"mediashelf/internal/media"
)

func seasonDirName(season int) string {
	return fmt.Sprintf("Season%02d", season)
}

func episodeFileName(series string, season, episode int, ext string) string {
	return fmt.Sprintf("%s - S%02dE%02d%s", classify.SanitizeName(series), season, episode, ext)
}

func ovaFileName(series string, number int, ext string) string {
	return fmt.Sprintf("%s - OVA%02d%s", classify.SanitizeName(series), number, ext)
}

func movieDirName(title string, year int) string {
	return fmt.Sprintf("%s (%d)", classify.SanitizeName(title), year)
}

// destination computes the canonical library path for a resolved identity.
// The result is a pure function of identity + config + source filename.
func (b *Builder) destination(file media.File, id classify.Identity) string {
	ext := filepath.Ext(file.Path)

	// Movies: Movies/Title (Year)/Title (Year).ext
	if id.Kind == classify.KindMovie {
		dir := movieDirName(id.MovieTitle, id.MovieYear)
		return filepath.Join(b.cfg.Paths.LibraryDir, "Movies", dir, dir+ext)
	}

	seriesDir := filepath.Join(b.cfg.Paths.LibraryDir, classify.SanitizeName(id.Series))

	switch id.Kind {
	case classify.KindEpisode:
		// Series/SeasonNN/Series - SxxEyy.ext
		return filepath.Join(seriesDir, seasonDirName(id.Season), episodeFileName(id.Series, id.Season, id.Episode, ext))
	case classify.KindOVA:
		// Series/OVA/Series - OVAnn.ext
		return filepath.Join(seriesDir, "OVA", ovaFileName(id.Series, id.Episode, ext))
	case classify.KindSpecial:
		// Series/Season00/Series - <original stem>.ext
		name := fmt.Sprintf("%s - %s%s", classify.SanitizeName(id.Series), classify.SanitizeName(file.Stem()), ext)
		return filepath.Join(seriesDir, seasonDirName(b.cfg.Rules.SpecialsSeason), name)
	case classify.KindExtra:
		// Series/<extras-dir>/<bucket>/Series - <original stem>.ext
		bucket := id.ExtraKind
		if bucket == "" {
			bucket = "other"
		}
		name := fmt.Sprintf("%s - %s%s", classify.SanitizeName(id.Series), classify.SanitizeName(file.Stem()), ext)
		return filepath.Join(seriesDir, b.cfg.Rules.ExtrasDirName, classify.SanitizeName(bucket), name)
	}

	return b.quarantinePath(file)
}

// quarantinePath preserves the original filename under the quarantine root.
func (b *Builder) quarantinePath(file media.File) string {
	return filepath.Join(b.cfg.Paths.QuarantineDir, file.Name())
}
