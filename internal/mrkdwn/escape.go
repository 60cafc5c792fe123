package mrkdwn

import "strings"

// escaper encodes the three characters mrkdwn reserves for its own markup.
// html.EscapeString also encodes quotes, which Slack renders literally.
var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Escape encodes &, < and > for use in mrkdwn text.
func Escape(s string) string {
	return escaper.Replace(s)
}
