package enhydris

import "strings"

// URLJoin concatenates URL or path segments with exactly one "/"
// between each pair, whether or not the individual segments already
// carry one at the seam. Slashes away from the seams are untouched,
// so URLJoin("http://x/", "/a/b/") == "http://x/a/b/". It is
// idempotent: URLJoin(URLJoin(a, b), c) == URLJoin(a, b, c).
func URLJoin(segments ...string) string {
	if len(segments) == 0 {
		return ""
	}
	joined := segments[0]
	for _, segment := range segments[1:] {
		joined = strings.TrimSuffix(joined, "/") + "/" + strings.TrimPrefix(segment, "/")
	}
	return joined
}
