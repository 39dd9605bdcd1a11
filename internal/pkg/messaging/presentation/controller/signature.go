package controller

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
)

// TwilioSignature computes X-Twilio-Signature: base64 HMAC-SHA1 of the full
// callback URL followed by every POST parameter name and value, sorted by name.
func TwilioSignature(authToken, callbackURL string, form url.Values) string {
	keys := make([]string, 0, len(form))
	for k := range form {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(callbackURL)
	for _, k := range keys {
		for _, v := range form[k] {
			b.WriteString(k)
			b.WriteString(v)
		}
	}
	mac := hmac.New(sha1.New, []byte(authToken))
	mac.Write([]byte(b.String()))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func validTwilioSignature(authToken, callbackURL string, form url.Values, header string) bool {
	if header == "" {
		return false
	}
	return hmac.Equal([]byte(TwilioSignature(authToken, callbackURL, form)), []byte(header))
}

// MetaSignature computes X-Hub-Signature-256 for a webhook body.
func MetaSignature(appSecret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(appSecret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func validMetaSignature(appSecret string, body []byte, header string) bool {
	if header == "" {
		return false
	}
	return hmac.Equal([]byte(MetaSignature(appSecret, body)), []byte(header))
}
