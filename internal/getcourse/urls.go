package getcourse

import "regexp"

var (
	streamIDRe = regexp.MustCompile(`/stream/view/id/(\d+)`)
	accountRe  = regexp.MustCompile(`https?://([^./]+)\.getcourse\.(ru|io)`)
)

// StreamIDFromURL extracts the numeric stream id from a GetCourse teach URL
// like https://acme.getcourse.ru/teach/control/stream/view/id/934935666.
// Returns "" when the URL carries no stream id.
func StreamIDFromURL(u string) string {
	m := streamIDRe.FindStringSubmatch(u)
	if m == nil {
		return ""
	}
	return m[1]
}

// AccountFromURL extracts the account name from a GetCourse URL, e.g. "acme"
// from https://acme.getcourse.ru/anything. Returns "" when the host is not a
// getcourse domain.
func AccountFromURL(u string) string {
	m := accountRe.FindStringSubmatch(u)
	if m == nil {
		return ""
	}
	return m[1]
}
