// Package subject defines the fixed catalogue of exam subjects for the
// Taiwan junior high comprehensive assessment (會考).
package subject

import "fmt"

// Subject identifies one of the five exam subjects.
// The zero value is Chinese; ordinals are stable and used as array indices.
type Subject int

const (
	Chinese Subject = iota
	English
	Math
	Science
	Social
)

// Count is the number of subjects. Mastery arrays are sized by it.
const Count = 5

// None is the sentinel for "no subject selected". It is not Valid.
const None Subject = -1

// All lists every subject in display order.
var All = [Count]Subject{Chinese, English, Math, Science, Social}

var names = [Count]string{"國文", "英文", "數學", "自然", "社會"}

var keys = [Count]string{"chinese", "english", "math", "science", "social"}

// topics holds the per-subject focus areas used to steer question
// generation. One is picked at random per battle.
var topics = [Count][]string{
	Chinese: {"字音字形", "成語運用", "文言文閱讀", "白話文閱讀", "國學常識"},
	English: {"文法", "單字運用", "閱讀測驗", "克漏字", "對話理解"},
	Math:    {"數與量", "代數", "幾何", "統計與機率", "函數"},
	Science: {"生物", "理化(物理)", "理化(化學)", "地球科學"},
	Social:  {"台灣歷史", "中國歷史", "世界歷史", "地理", "公民"},
}

// Valid reports whether s is one of the five defined subjects.
func (s Subject) Valid() bool {
	return s >= Chinese && s < Count
}

// Name returns the display name (Traditional Chinese).
func (s Subject) Name() string {
	if !s.Valid() {
		return "?"
	}
	return names[s]
}

// Key returns the stable ASCII identifier used in serialized records.
func (s Subject) Key() string {
	if !s.Valid() {
		return "unknown"
	}
	return keys[s]
}

func (s Subject) String() string { return s.Key() }

// Topics returns the focus areas for question generation.
func (s Subject) Topics() []string {
	if !s.Valid() {
		return nil
	}
	return topics[s]
}

// FromKey resolves a serialized key back to a Subject.
func FromKey(key string) (Subject, error) {
	for i, k := range keys {
		if k == key {
			return Subject(i), nil
		}
	}
	return 0, fmt.Errorf("unknown subject key %q", key)
}
