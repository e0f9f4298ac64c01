package quizgen

import (
	"context"

	"github.com/google/uuid"

	"github.com/abhisek/capmaster/internal/quiz"
	"github.com/abhisek/capmaster/internal/subject"
)

// fallbackGenerator serves a canned question bank when the inner
// generator fails, so a battle can always start offline.
type fallbackGenerator struct {
	inner Generator
}

// WithFallback wraps a Generator with the canned bank. Any inner error
// is swallowed in favor of fallback questions.
func WithFallback(g Generator) Generator {
	return &fallbackGenerator{inner: g}
}

func (f *fallbackGenerator) Generate(ctx context.Context, input GenerateInput) ([]quiz.Question, error) {
	qs, err := f.inner.Generate(ctx, input)
	if err == nil {
		return qs, nil
	}
	// Context cancellation means the caller gave up, not that the
	// provider failed.
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return FallbackQuestions(input.Subject), nil
}

// FallbackQuestions returns fresh copies of the canned bank for a
// subject, with new IDs so history entries stay distinct.
func FallbackQuestions(s subject.Subject) []quiz.Question {
	bank := fallbackBank[s]
	out := make([]quiz.Question, len(bank))
	for i, q := range bank {
		q.ID = uuid.New().String()
		out[i] = q
	}
	return out
}

// fallbackBank holds three offline questions per subject.
var fallbackBank = map[subject.Subject][]quiz.Question{
	subject.Chinese: {
		{
			Text:         "「門可羅雀」這個成語的意思是?",
			Options:      []string{"訪客眾多,十分熱鬧", "訪客稀少,十分冷清", "門前架網捕捉麻雀", "家境貧困,以捕雀為生"},
			CorrectIndex: 1,
			Explanation:  "門可羅雀形容門庭冷落,賓客稀少,冷清到門口可以張網捕雀。",
			Topic:        "成語運用",
		},
		{
			Text:         "「未雨綢繆」比喻下列何者?",
			Options:      []string{"事先做好準備", "事後補救過失", "臨時抱佛腳", "庸人自擾"},
			CorrectIndex: 0,
			Explanation:  "未雨綢繆指趁著還沒下雨,先修繕房屋門窗,比喻事先預做準備。",
			Topic:        "成語運用",
		},
		{
			Text:         "「他的文筆如行雲流水」一句使用了哪種修辭?",
			Options:      []string{"譬喻", "擬人", "誇飾", "排比"},
			CorrectIndex: 0,
			Explanation:  "句中以「行雲流水」比喻文筆流暢自然,屬於譬喻修辭。",
			Topic:        "白話文閱讀",
		},
	},
	subject.English: {
		{
			Text:         "She ___ to school by bus every day.",
			Options:      []string{"go", "goes", "going", "gone"},
			CorrectIndex: 1,
			Explanation:  "主詞 She 是第三人稱單數,現在簡單式動詞須加 -es,故選 goes。",
			Topic:        "文法",
		},
		{
			Text:         "What is the opposite of \"expensive\"?",
			Options:      []string{"cheap", "costly", "valuable", "rare"},
			CorrectIndex: 0,
			Explanation:  "expensive 意為昂貴的,反義詞是 cheap(便宜的)。",
			Topic:        "單字運用",
		},
		{
			Text:         "I have lived in Taipei ___ 2010.",
			Options:      []string{"for", "since", "during", "at"},
			CorrectIndex: 1,
			Explanation:  "現在完成式搭配特定起始時間點用 since,搭配一段期間才用 for。",
			Topic:        "文法",
		},
	},
	subject.Math: {
		{
			Text:         "解一元一次方程式 2x + 3 = 11,x 的值為何?",
			Options:      []string{"3", "4", "5", "6"},
			CorrectIndex: 1,
			Explanation:  "兩邊同減 3 得 2x = 8,再同除以 2,得 x = 4。",
			Topic:        "代數",
		},
		{
			Text:         "三角形的內角和為幾度?",
			Options:      []string{"90 度", "180 度", "270 度", "360 度"},
			CorrectIndex: 1,
			Explanation:  "任意三角形的三個內角和恆為 180 度,四邊形才是 360 度。",
			Topic:        "幾何",
		},
		{
			Text:         "√64 的值為何?",
			Options:      []string{"6", "7", "8", "9"},
			CorrectIndex: 2,
			Explanation:  "因為 8 × 8 = 64,所以 64 的平方根為 8。",
			Topic:        "數與量",
		},
	},
	subject.Science: {
		{
			Text:         "在標準大氣壓下,水的沸點為攝氏幾度?",
			Options:      []string{"90 度", "100 度", "110 度", "120 度"},
			CorrectIndex: 1,
			Explanation:  "標準大氣壓(1 atm)下,純水在攝氏 100 度沸騰。",
			Topic:        "理化(物理)",
		},
		{
			Text:         "植物行光合作用時,主要釋放出下列哪種氣體?",
			Options:      []string{"氧氣", "二氧化碳", "氮氣", "氫氣"},
			CorrectIndex: 0,
			Explanation:  "光合作用吸收二氧化碳與水,產生葡萄糖並釋放氧氣。",
			Topic:        "生物",
		},
		{
			Text:         "地球繞太陽公轉一圈約需多久?",
			Options:      []string{"一天", "一個月", "一年", "十年"},
			CorrectIndex: 2,
			Explanation:  "地球公轉週期約 365.25 天,即一年;自轉一圈才是一天。",
			Topic:        "地球科學",
		},
	},
	subject.Social: {
		{
			Text:         "臺灣位於下列哪兩個板塊的交界帶?",
			Options:      []string{"歐亞板塊與菲律賓海板塊", "太平洋板塊與美洲板塊", "印澳板塊與非洲板塊", "南極板塊與太平洋板塊"},
			CorrectIndex: 0,
			Explanation:  "臺灣地處歐亞板塊與菲律賓海板塊的聚合交界,因此地震頻繁。",
			Topic:        "地理",
		},
		{
			Text:         "我國中央政府中,負責行使立法權的機關為何?",
			Options:      []string{"行政院", "立法院", "司法院", "監察院"},
			CorrectIndex: 1,
			Explanation:  "立法院是最高立法機關,負責制定法律與審查預算。",
			Topic:        "公民",
		},
		{
			Text:         "赤道通過下列哪一洲?",
			Options:      []string{"南極洲", "歐洲", "非洲", "北美洲"},
			CorrectIndex: 2,
			Explanation:  "赤道橫越非洲中部、南美洲北部與東南亞島嶼,選項中僅非洲符合。",
			Topic:        "地理",
		},
	},
}
