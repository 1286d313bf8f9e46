package specimen

import (
	"fmt"
	"time"
)

// Remote plant images.
const (
	SeedImage      = "https://cdn.jsdelivr.net/gh/zhuz4272-jpg/-Oasis--Images/img/%E9%A6%96%E9%A1%B5%E8%B5%84%E6%BA%90.png"
	CactusImage    = "https://cdn.jsdelivr.net/gh/zhuz4272-jpg/-Oasis--Images/img/%E6%9A%B4%E8%BA%81%E4%BB%99%E4%BA%BA%E6%8E%8C.png"
	AloeImage      = "https://cdn.jsdelivr.net/gh/zhuz4272-jpg/-Oasis--Images/img/%E5%8F%8D%E5%8D%B7%E8%8A%A6%E8%8D%9F.png"
	SunflowerImage = "https://cdn.jsdelivr.net/gh/zhuz4272-jpg/-Oasis--Images/img/%E7%A4%BE%E7%89%9B%E4%BB%99%E4%BA%BA%E6%8E%8C.png"
	MossImage      = "https://cdn.jsdelivr.net/gh/zhuz4272-jpg/-Oasis--Images/img/%E4%BD%9B%E7%B3%BB%E8%8B%94%E8%97%93.png"
	FlytrapImage   = "https://cdn.jsdelivr.net/gh/zhuz4272-jpg/-Oasis--Images/img/%E7%86%AC%E5%A4%9C%E6%8D%95%E8%9D%87%E8%8D%89.png"
)

// DefaultSpecimenNo is the identifier printed on every card and used in export filenames.
const DefaultSpecimenNo = "0824"

var defaultPresets = []Preset{
	{
		Name:         "反卷芦荟",
		Image:        AloeImage,
		TagType:      TagAuspicious,
		TagText:      "物理断网",
		Quote:        "今天你的角质层很厚，外界的焦虑无法渗透你。适合做一个安静的美容博主，或者单纯发呆。",
		CTA:          "去绿洲发一张“天空”的照片 ☁️",
		Illustration: true,
	},
	{
		Name:         "暴躁仙人掌",
		Image:        CactusImage,
		TagType:      TagInauspicious,
		TagText:      "随便抱抱",
		Quote:        "浑身是刺不是你的错，是世界太拥挤。保持距离产生美，今天谁惹你，扎谁便是。",
		CTA:          "去绿洲给陌生人点一个“赞” 👍",
		Illustration: true,
	},
	{
		Name:         "社牛仙人掌",
		Image:        SunflowerImage,
		TagType:      TagAuspicious,
		TagText:      "光合作用",
		Quote:        "你的能量过剩，急需释放！别憋在工位上，去晒太阳，去见人，去成为人群中的光源。",
		CTA:          "在绿洲带话题 #今日穿搭 发帖 👗",
		Illustration: true,
	},
	{
		Name:         "佛系苔藓",
		Image:        MossImage,
		TagType:      TagAuspicious,
		TagText:      "阴暗爬行",
		Quote:        "今天不宜出头，适合在角落里静静生长。虽不起眼，但你不仅绿，而且绿得很有层次感。",
		CTA:          "浏览绿洲“萌宠”频道 10 分钟 🐱",
		Illustration: true,
	},
	{
		Name:         "熬夜捕蝇草",
		Image:        FlytrapImage,
		TagType:      TagInauspicious,
		TagText:      "通宵冲浪",
		Quote:        "嘴巴张得太大容易吃进脏东西。闭嘴，闭眼，该消化一下最近的情绪了。",
		CTA:          "搜索绿洲里的“助眠白噪音” 💤",
		Illustration: true,
	},
}

var loadingTexts = []string{
	"正在吸收清晨露水...",
	"正在捕获第一缕阳光...",
	"正在舒展叶脉...",
	"正在从土壤汲取养分...",
	"正在分析今日气场...",
}

// DefaultPresets returns a copy of the built-in preset list.
func DefaultPresets() []Preset {
	out := make([]Preset, len(defaultPresets))
	copy(out, defaultPresets)
	return out
}

// LoadingTexts returns the status lines cycled while a card is generating.
func LoadingTexts() []string {
	out := make([]string, len(loadingTexts))
	copy(out, loadingTexts)
	return out
}

// DefaultTexts returns the built-in interface copy.
func DefaultTexts() Texts {
	return Texts{
		AppName:        "绿洲 APP",
		StartTitle:     "绿洲 · 今日光合作用",
		StartHeadline:  "今日缺水？缺阳光？\n还是缺个朋友？",
		StartSubtitle:  "运势正在土壤中酝酿...",
		ButtonGenerate: "浇水唤醒",
		ButtonSub:      "生成 · GENERATE",
		ResultTitle:    "Daily Vegetation",
		Collection:     "Oasis 绿洲",
		SpecimenNo:     DefaultSpecimenNo,
		SaveFailed:     "保存图片失败，请重试",
	}
}

// Find returns the preset whose name matches exactly.
func Find(presets []Preset, name string) (Preset, bool) {
	for _, p := range presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// FormatDate renders t as month and day, the way the card header shows it.
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d月%d日", int(t.Month()), t.Day())
}
