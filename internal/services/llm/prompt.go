package llm

// mediaIdentityPrompt instructs the model to identify one release filename.
// The schema mirrors MediaIdentity; anything the model cannot determine must
// be reported as kind "unknown" rather than guessed.
const mediaIdentityPrompt = `You identify video files from their release filenames.

Given a filename, respond with JSON only, using this schema:
{
  "kind": "episode" | "special" | "ova" | "extra" | "movie" | "unknown",
  "series": "canonical series title, empty for movies",
  "season": <season number, 0 for specials>,
  "episode": <episode number, 0 when not applicable>,
  "extra_bucket": "openings" | "endings" | "trailers" | "interviews" | "featurettes" | "" ,
  "title": "movie title, empty for series content",
  "year": <movie release year, 0 when not applicable>
}

Rules:
- Use the widely accepted English title for the series or movie.
- Release-group tags, resolutions, codecs and checksums are noise.
- If you are not confident about the identification, set kind to "unknown".
- Never invent season or episode numbers that are not implied by the name.`
