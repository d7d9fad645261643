package youtube

import (
	"strings"

	"ytrend/internal/models"
)

// AgeGroup is the audience a search is aimed at.
type AgeGroup string

// Audience groups.
const (
	AgeAll        AgeGroup = "전체"
	AgeChildren   AgeGroup = "어린이 (7세 이하)"
	AgeTeens      AgeGroup = "청소년 (8-17세)"
	AgeYoungAdult AgeGroup = "청년 (18-24세)"
	AgeAdult      AgeGroup = "성인 (25-34세)"
	AgeMiddleAged AgeGroup = "중년 (35-54세)"
	AgeSenior     AgeGroup = "장년 (55세 이상)"
)

// Safe search levels accepted by the search endpoint.
const (
	SafeSearchStrict   = "strict"
	SafeSearchModerate = "moderate"
	SafeSearchNone     = "none"
)

type audience struct {
	safeSearch string
	// queryKeywords are appended to the query, first one only.
	queryKeywords []string
	// exclude drops a video whose title or description contains any of them.
	exclude []string
}

var audiences = map[AgeGroup]audience{
	AgeChildren: {
		safeSearch:    SafeSearchStrict,
		queryKeywords: []string{"어린이", "키즈", "유아", "아이", "동화"},
		exclude:       []string{"성인", "19금", "술", "담배", "폭력"},
	},
	AgeTeens: {
		safeSearch:    SafeSearchStrict,
		queryKeywords: []string{"청소년", "학생", "10대", "중학생", "고등학생"},
		exclude:       []string{"성인", "19금", "술", "담배"},
	},
	AgeYoungAdult: {
		safeSearch:    SafeSearchModerate,
		queryKeywords: []string{"대학생", "청년", "20대", "취업", "연애"},
		exclude:       []string{"어린이", "키즈"},
	},
	AgeAdult: {
		safeSearch:    SafeSearchNone,
		queryKeywords: []string{"직장", "회사원", "30대", "결혼", "육아"},
		exclude:       []string{"어린이", "키즈"},
	},
	AgeMiddleAged: {
		safeSearch:    SafeSearchNone,
		queryKeywords: []string{"중년", "40대", "50대", "가족", "자녀교육"},
		exclude:       []string{"어린이", "키즈", "10대"},
	},
	AgeSenior: {
		safeSearch:    SafeSearchNone,
		queryKeywords: []string{"시니어", "은퇴", "건강", "노년", "실버"},
		exclude:       []string{"어린이", "키즈", "10대", "20대"},
	},
}

// AgeGroups lists the known groups in display order.
func AgeGroups() []AgeGroup {
	return []AgeGroup{AgeAll, AgeChildren, AgeTeens, AgeYoungAdult, AgeAdult, AgeMiddleAged, AgeSenior}
}

// SafeSearch returns the safe search level for g. Unknown groups get none.
func (g AgeGroup) SafeSearch() string {
	if a, ok := audiences[g]; ok {
		return a.safeSearch
	}

	return SafeSearchNone
}

// EnhanceQuery appends the group's leading keyword to query.
func (g AgeGroup) EnhanceQuery(query string) string {
	a, ok := audiences[g]
	if !ok || len(a.queryKeywords) == 0 {
		return query
	}

	return query + " " + a.queryKeywords[0]
}

// Filter drops raw videos whose title or description contains one of the
// group's excluded keywords. The input is not modified.
func (g AgeGroup) Filter(raws []models.RawVideo) []models.RawVideo {
	a, ok := audiences[g]
	if !ok || len(a.exclude) == 0 {
		return raws
	}

	out := make([]models.RawVideo, 0, len(raws))

	for _, raw := range raws {
		title, _ := raw[models.RawTitle].(string)
		desc, _ := raw[models.RawDescription].(string)
		content := strings.ToLower(title + " " + desc)

		if !containsAny(content, a.exclude) {
			out = append(out, raw)
		}
	}

	return out
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}

	return false
}
