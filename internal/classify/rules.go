package classify

import "regexp"

// invalidNameChars are reserved characters media servers reject in names.
const invalidNameChars = `<>:"/\|?*`

// Matches: S01E02 / s1e2
var reSeasonEpisode = regexp.MustCompile(`(?i)\bS(\d{1,2})E(\d{1,3})\b`)

// Matches: 1x02 / 01x002
var reCrossEpisode = regexp.MustCompile(`(?i)\b(\d{1,2})x(\d{1,3})\b`)

// Matches: "Title - 01 ..." (common anime release naming)
var reDashEpisode = regexp.MustCompile(`(?i)\s-\s(\d{1,3})(\s|$)`)

// Matches: "...Code01..." where a two-digit episode is glued to the title.
var reGluedEpisode = regexp.MustCompile(`(?i)^[a-z]+(\d{2})([a-z].*)?$`)

// Matches: the first standalone number, the last-resort episode guess.
var reAnyNumber = regexp.MustCompile(`(\d{1,3})(\D|$)`)

// Bracketed release-group / quality tags: [SubsPlease], (1080p), ...
var reBracketed = regexp.MustCompile(`[\[\(][^\]\)]*[\]\)]`)

var reWhitespace = regexp.MustCompile(`\s+`)

// Release/quality/group noise stripped so the series folder name stays stable.
var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(480p|720p|1080p|2160p|4k)\b`),
	regexp.MustCompile(`(?i)\b(10bit|8bit|hdr10\+?|hdr|dv|dolby\.?vision)\b`),
	regexp.MustCompile(`(?i)\b(x264|x265|h\.?264|h\.?265|hevc|avc)\b`),
	regexp.MustCompile(`(?i)\b(aac|flac|opus|dts|truehd|ddp|eac3|ac3)\b`),
	regexp.MustCompile(`(?i)\b(web-?dl|webrip|web|bluray|bdrip|brrip|remux|dvd|dvdrip|hdrip)\b`),
	regexp.MustCompile(`(?i)\b(dual\s*audio|multi\s*audio|subbed|dubbed)\b`),
	regexp.MustCompile(`(?i)\b(repack|proper|uncensored)\b`),
	regexp.MustCompile(`(?i)\b(batch)\b`),
	regexp.MustCompile(`(?i)\b(s\d{1,2})\b`),
	regexp.MustCompile(`(?i)\b(season\s*\d{1,2})\b`),
	regexp.MustCompile(`(?i)\b(complete)\b`),
}

// specialKeywords mark specials only when no episode marker is present, so
// OP/ED/SP fragments in a filename never demote a real episode.
var specialKeywords = []string{"OVA", "OAD", "SPECIAL", "SP"}

// extraKeywords mark non-episode bonus content (creditless openings,
// trailers, promos) that belongs under the extras folder.
var extraKeywords = []string{
	"NCOP", "NCED", "OP", "ED", "OPENING", "ENDING",
	"CREDITLESS", "PV", "TRAILER", "CM", "PROMO", "TEASER",
}
