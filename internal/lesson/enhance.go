package lesson

import "regexp"

// Options toggles the optional content enhancement passes. Both default to
// enabled via DefaultOptions.
type Options struct {
	EmbedVideos    bool
	OptimizeImages bool
}

func DefaultOptions() Options {
	return Options{EmbedVideos: true, OptimizeImages: true}
}

var (
	// youtubeRe matches watch URLs and youtu.be short links; group 2 is the
	// video id. URLs that do not match are left untouched.
	youtubeRe = regexp.MustCompile(`(https?://(?:www\.)?(?:youtube\.com/watch\?v=|youtu\.be/)([a-zA-Z0-9_-]+))`)

	imgTagRe = regexp.MustCompile(`<img([^>]+)>`)
)

// Enhance applies the enabled post-processing passes to the lesson HTML.
// Both passes are pure string rewrites with no shared state, so they compose
// in either order.
func Enhance(html string, opts Options) string {
	out := html

	if opts.EmbedVideos {
		out = youtubeRe.ReplaceAllString(out,
			`<iframe width="560" height="315" src="https://www.youtube.com/embed/${2}" frameborder="0" allowfullscreen></iframe>`)
	}

	if opts.OptimizeImages {
		out = imgTagRe.ReplaceAllString(out,
			`<img${1} style="max-width: 100%; height: auto;">`)
	}

	return out
}
