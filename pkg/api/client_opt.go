package api

import "net/http"

type oauth2Opt struct {
	value string
}

// OAuth2 puts the given token in the Authorization header of the request,
// e.g. OAuth2("Bearer", accessToken).
func OAuth2(prefix, token string) *oauth2Opt {
	return &oauth2Opt{value: prefix + " " + token}
}

func (opt *oauth2Opt) Do(client defaultClient, req *http.Request) {
	req.Header.Set("Authorization", opt.value)
}
