package wastesort

import (
	"errors"
	"sort"
	"strings"
)

// ErrNotFound is returned by name lookups with no matching catalog item.
var ErrNotFound = errors.New("wastesort: no matching catalog item")

// maxTextResults caps ClassifyByText output.
const maxTextResults = 5

// Item is one entry of the waste catalog.
type Item struct {
	Name        string
	Category    Category
	Description string
	Disposal    string   // how to dispose of it
	Tip         string   // extra advice shown to the user
	Keywords    []string // lookup keywords, matched as substrings
}

// ItemScore pairs a catalog item with a text-match confidence.
type ItemScore struct {
	Item  *Item
	Score float64
}

// Catalog is the static reference list of waste items plus a keyword index.
// Built once, read-only afterwards, so safe for concurrent use.
type Catalog struct {
	items []*Item

	// index maps lowercased keyword → items carrying it. keys preserves
	// insertion order so fuzzy scans are deterministic.
	index map[string][]*Item
	keys  []string
}

// NewCatalog builds a catalog and its keyword index from items. Duplicate
// keywords on one item produce duplicate bucket entries; SearchByKeyword
// dedups in its own result set instead.
func NewCatalog(items []*Item) *Catalog {
	c := &Catalog{
		items: items,
		index: make(map[string][]*Item),
	}
	for _, it := range items {
		for _, kw := range it.Keywords {
			kw = strings.ToLower(kw)
			if _, ok := c.index[kw]; !ok {
				c.keys = append(c.keys, kw)
			}
			c.index[kw] = append(c.index[kw], it)
		}
	}
	return c
}

// Items returns the catalog entries in insertion order.
func (c *Catalog) Items() []*Item {
	return c.items
}

// SearchByName finds the first item whose name contains the query or whose
// name is contained in the query (both lowercased). The asymmetry is
// deliberate: "塑料" finds "塑料瓶", and "一个塑料瓶" finds it too.
func (c *Catalog) SearchByName(query string) (*Item, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, ErrNotFound
	}
	for _, it := range c.items {
		name := strings.ToLower(it.Name)
		if strings.Contains(name, query) || strings.Contains(query, name) {
			return it, nil
		}
	}
	return nil, ErrNotFound
}

// SearchByKeyword returns all items indexed under the exact keyword, then
// items whose keyword fuzzily matches (substring either way), skipping ones
// already collected.
func (c *Catalog) SearchByKeyword(keyword string) []*Item {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return nil
	}

	var out []*Item
	seen := make(map[*Item]bool)

	for _, it := range c.index[keyword] {
		out = append(out, it)
		seen[it] = true
	}

	for _, kw := range c.keys {
		if !strings.Contains(kw, keyword) && !strings.Contains(keyword, kw) {
			continue
		}
		for _, it := range c.index[kw] {
			if seen[it] {
				continue
			}
			out = append(out, it)
			seen[it] = true
		}
	}

	return out
}

// ClassifyByText scores every catalog item against the query text:
//
//   - exact name match short-circuits with a single score-1.0 result
//   - +0.4 when the query appears in the item name
//   - +0.3 × (matched keywords / total keywords), a keyword matching when it
//     appears inside the query
//   - +0.2 when the query appears in the item description
//
// Items with a positive score are returned descending, capped at 5. A blank
// query yields no results rather than an error.
func (c *Catalog) ClassifyByText(text string) []ItemScore {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil
	}

	for _, it := range c.items {
		if strings.ToLower(it.Name) == text {
			return []ItemScore{{Item: it, Score: 1.0}}
		}
	}

	var out []ItemScore
	for _, it := range c.items {
		var score float64

		if strings.Contains(strings.ToLower(it.Name), text) {
			score += 0.4
		}

		matched := 0
		for _, kw := range it.Keywords {
			if strings.Contains(text, strings.ToLower(kw)) {
				matched++
			}
		}
		if matched > 0 {
			score += 0.3 * float64(matched) / float64(len(it.Keywords))
		}

		if strings.Contains(strings.ToLower(it.Description), text) {
			score += 0.2
		}

		if score > 0 {
			out = append(out, ItemScore{Item: it, Score: score})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > maxTextResults {
		out = out[:maxTextResults]
	}
	return out
}

// ExamplesByCategory returns up to 5 item names for the category, in catalog
// order. Used by the web UI category cards and the CLI examples listing.
func (c *Catalog) ExamplesByCategory(cat Category) []string {
	var names []string
	for _, it := range c.items {
		if it.Category != cat {
			continue
		}
		names = append(names, it.Name)
		if len(names) == 5 {
			break
		}
	}
	return names
}

// DefaultCatalog returns the built-in sixteen-item catalog, four per category.
func DefaultCatalog() *Catalog {
	return NewCatalog([]*Item{
		// 可回收物
		{
			Name:        "塑料瓶",
			Category:    Recyclable,
			Description: "塑料制品，常见于饮料包装",
			Disposal:    "清洗干净，压扁后投放",
			Tip:         "瓶盖通常属于其他垃圾",
			Keywords:    []string{"塑料", "瓶子", "饮料瓶", "矿泉水瓶"},
		},
		{
			Name:        "易拉罐",
			Category:    Recyclable,
			Description: "金属制品，常见于饮料包装",
			Disposal:    "压扁后投放",
			Tip:         "保持干燥清洁",
			Keywords:    []string{"易拉罐", "铝罐", "金属", "罐头"},
		},
		{
			Name:        "报纸",
			Category:    Recyclable,
			Description: "纸制品，可回收利用",
			Disposal:    "叠放整齐后投放",
			Tip:         "受污染的纸不属于可回收物",
			Keywords:    []string{"报纸", "纸张", "纸制品", "废纸"},
		},
		{
			Name:        "玻璃瓶",
			Category:    Recyclable,
			Description: "玻璃制品，可回收利用",
			Disposal:    "轻放避免破碎",
			Tip:         "有破损的玻璃要小心处理",
			Keywords:    []string{"玻璃", "瓶子", "玻璃瓶", "酒瓶"},
		},

		// 有害垃圾
		{
			Name:        "电池",
			Category:    Hazardous,
			Description: "含重金属，对环境有害",
			Disposal:    "投放至有害垃圾桶",
			Tip:         "不要随意丢弃",
			Keywords:    []string{"电池", "干电池", "充电电池", "锂电池"},
		},
		{
			Name:        "过期药品",
			Category:    Hazardous,
			Description: "化学物质，可能污染环境",
			Disposal:    "投放至有害垃圾桶",
			Tip:         "最好保持原包装",
			Keywords:    []string{"药品", "过期药", "西药", "中药"},
		},
		{
			Name:        "灯管",
			Category:    Hazardous,
			Description: "含汞，有害物质",
			Disposal:    "轻放避免破碎",
			Tip:         "节能灯也属于此类",
			Keywords:    []string{"灯管", "日光灯", "节能灯", "灯泡"},
		},
		{
			Name:        "油漆桶",
			Category:    Hazardous,
			Description: "化学物质，有害环境",
			Disposal:    "密封后投放",
			Tip:         "残留油漆要倒出",
			Keywords:    []string{"油漆", "涂料", "油漆桶", "颜料"},
		},

		// 厨余垃圾
		{
			Name:        "剩饭剩菜",
			Category:    Kitchen,
			Description: "食物残渣，易腐烂",
			Disposal:    "沥干水分后投放",
			Tip:         "尽量去除包装",
			Keywords:    []string{"剩饭", "剩菜", "饭菜", "食物残渣"},
		},
		{
			Name:        "果皮",
			Category:    Kitchen,
			Description: "水果残余，有机质",
			Disposal:    "直接投放",
			Tip:         "柚子皮等较硬的可作为其他垃圾",
			Keywords:    []string{"果皮", "水果皮", "香蕉皮", "苹果核"},
		},
		{
			Name:        "茶叶渣",
			Category:    Kitchen,
			Description: "植物残余，有机质",
			Disposal:    "沥干水分后投放",
			Tip:         "茶包要分开处理",
			Keywords:    []string{"茶叶", "茶渣", "茶包", "茶叶渣"},
		},
		{
			Name:        "蛋壳",
			Category:    Kitchen,
			Description: "食物残余，有机质",
			Disposal:    "直接投放",
			Tip:         "保持干燥",
			Keywords:    []string{"蛋壳", "鸡蛋壳", "鸭蛋壳"},
		},

		// 其他垃圾
		{
			Name:        "卫生纸",
			Category:    Other,
			Description: "受污染纸张，不可回收",
			Disposal:    "直接投放",
			Tip:         "遇水即溶的纸张",
			Keywords:    []string{"卫生纸", "纸巾", "厕纸", "面巾纸"},
		},
		{
			Name:        "陶瓷碎片",
			Category:    Other,
			Description: "不可回收材料",
			Disposal:    "包裹后投放",
			Tip:         "小心划伤",
			Keywords:    []string{"陶瓷", "瓷器", "碎片", "碗碟"},
		},
		{
			Name:        "烟头",
			Category:    Other,
			Description: "烟草残余，有害物质",
			Disposal:    "确保熄灭后投放",
			Tip:         "含有害物质",
			Keywords:    []string{"烟头", "香烟", "烟蒂", "烟灰"},
		},
		{
			Name:        "塑料袋",
			Category:    Other,
			Description: "受污染塑料，不可回收",
			Disposal:    "直接投放",
			Tip:         "干净的可作为可回收物",
			Keywords:    []string{"塑料袋", "塑料膜", "包装袋"},
		},
	})
}
