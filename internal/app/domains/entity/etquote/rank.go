package etquote

import "sort"

// Sort 排序：默认按总价、时效、名称；加急件时效优先
func Sort(quotes []*Quote, express bool) {
	before := cheaper
	if express {
		before = faster
	}
	sort.SliceStable(quotes, func(i, j int) bool {
		return before(quotes[i], quotes[j])
	})
}

// Tag 标记最便宜（CHEAPEST，isBestValue）与最快（FASTEST）的报价
// 平局规则与 Sort 一致，保证排在首位的报价拿到对应标签
func Tag(quotes []*Quote) {
	var cheapest, fastest *Quote
	for _, q := range quotes {
		q.Tags = nil
		q.IsBestValue = false

		if cheapest == nil || cheaper(q, cheapest) {
			cheapest = q
		}
		if q.TransitDays <= 0 {
			continue
		}
		if fastest == nil || faster(q, fastest) {
			fastest = q
		}
	}

	if cheapest != nil {
		cheapest.Tags = append(cheapest.Tags, TagCheapest)
		cheapest.IsBestValue = true
	}
	if fastest != nil {
		fastest.Tags = append(fastest.Tags, TagFastest)
	}
}

// Rank 排序并打标签
func Rank(quotes []*Quote, express bool) []*Quote {
	Sort(quotes, express)
	Tag(quotes)
	return quotes
}

// cheaper 总价 -> 时效 -> 名称
func cheaper(a, b *Quote) bool {
	if a.TotalCharges != b.TotalCharges {
		return a.TotalCharges < b.TotalCharges
	}
	if a.TransitDays != b.TransitDays {
		return less(a.TransitDays, b.TransitDays)
	}
	return a.TransporterName < b.TransporterName
}

// faster 时效 -> 总价 -> 名称
func faster(a, b *Quote) bool {
	if a.TransitDays != b.TransitDays {
		return less(a.TransitDays, b.TransitDays)
	}
	if a.TotalCharges != b.TotalCharges {
		return a.TotalCharges < b.TotalCharges
	}
	return a.TransporterName < b.TransporterName
}

// less 未知时效（0）排在最后
func less(a, b float64) bool {
	if a <= 0 {
		return false
	}
	if b <= 0 {
		return true
	}
	return a < b
}
