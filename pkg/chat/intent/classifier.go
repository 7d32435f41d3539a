package intent

import (
	"strings"
)

// Intent is the classified purpose of a single user turn. It is derived from
// the raw input plus static keyword tables and never persisted.
type Intent string

const (
	IntentGreeting          Intent = "GREETING"
	IntentReset             Intent = "RESET"
	IntentConfirmYes        Intent = "CONFIRM_YES"
	IntentConfirmNo         Intent = "CONFIRM_NO"
	IntentPriceQuery        Intent = "PRICE_QUERY"
	IntentAvailabilityQuery Intent = "AVAILABILITY_QUERY"
	IntentColorQuery        Intent = "COLOR_QUERY"
	IntentTitleQuery        Intent = "TITLE_QUERY"
	IntentFreeformQuery     Intent = "FREEFORM_SEMANTIC_QUERY"
	IntentImageQuery        Intent = "IMAGE_QUERY"
	IntentUnknown           Intent = "UNKNOWN"
)

// Keyword tables. The storefront serves Vietnamese customers first, so every
// set carries Vietnamese plus the common English equivalents.
const resetKeyword = "reset"

var greetingSet = []string{
	"hi", "hello", "alo",
	"chào", "xin chào", "chào bạn", "chào shop",
}

var confirmYesSet = []string{
	"có", "vâng", "ừ", "uhm", "đồng ý", "oke", "ok",
	"yes", "yep", "sure",
}

var confirmNoSet = []string{
	"không", "ko", "thôi", "không cần",
	"no", "nope",
}

var priceKeywords = []string{
	"giá", "bao nhiêu tiền", "bao nhiêu",
	"price", "how much", "cost",
}

var availabilityPhrases = []string{
	"còn hàng", "có bán", "shop có", "cửa hàng có",
	"in stock", "do you sell", "does the store have",
}

// ColorTable maps a source-language color word to its canonical token, as the
// CLIP service expects. Longer phrases come first so "xanh lá" wins over "lá".
var ColorTable = []struct {
	Word  string
	Token string
}{
	{"xanh dương", "blue"},
	{"xanh lá", "green"},
	{"xanh", "blue"},
	{"đỏ", "red"},
	{"vàng", "yellow"},
	{"đen", "black"},
	{"trắng", "white"},
	{"cam", "orange"},
	{"tím", "purple"},
	{"hồng", "pink"},
	{"nâu", "brown"},
	{"xám", "gray"},
	{"red", "red"},
	{"blue", "blue"},
	{"green", "green"},
	{"yellow", "yellow"},
	{"black", "black"},
	{"white", "white"},
	{"orange", "orange"},
	{"purple", "purple"},
	{"pink", "pink"},
	{"brown", "brown"},
	{"gray", "gray"},
	{"grey", "gray"},
}

// Classify maps a raw turn to exactly one Intent, first match wins.
// Pure function of the input and the keyword tables above.
func Classify(text string, hasImage bool) Intent {
	normalized := strings.ToLower(strings.TrimSpace(text))

	switch {
	case normalized == resetKeyword:
		return IntentReset
	case equalsAny(normalized, greetingSet):
		return IntentGreeting
	case equalsAny(normalized, confirmYesSet):
		return IntentConfirmYes
	case equalsAny(normalized, confirmNoSet):
		return IntentConfirmNo
	case normalized != "" && containsAny(normalized, priceKeywords):
		return IntentPriceQuery
	case normalized != "" && containsAny(normalized, availabilityPhrases):
		return IntentAvailabilityQuery
	case normalized != "" && ColorToken(normalized) != "":
		return IntentColorQuery
	case normalized != "" && !hasImage:
		return IntentTitleQuery
	case hasImage:
		return IntentImageQuery
	default:
		return IntentUnknown
	}
}

// ColorToken returns the canonical token for the first color word found in the
// text, or "" when no color is mentioned.
func ColorToken(text string) string {
	normalized := strings.ToLower(text)
	for _, entry := range ColorTable {
		if strings.Contains(normalized, entry.Word) {
			return entry.Token
		}
	}
	return ""
}

func equalsAny(s string, set []string) bool {
	for _, member := range set {
		if s == member {
			return true
		}
	}
	return false
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
