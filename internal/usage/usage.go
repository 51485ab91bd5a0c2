// Package usage estimates how much space chats take, by category.
package usage

import "github.com/matheus3301/mockchat/internal/store"

// Estimated sizes in MB.
const (
	TotalMB = 100.0
	TextMB  = 0.5
	MediaMB = 2.5
	FileMB  = 1.8
	CacheMB = 3.2
)

// Category identifies a usage bucket.
type Category string

const (
	Messages Category = "messages"
	Media    Category = "media"
	Files    Category = "files"
	Cache    Category = "cache"
)

// Categories lists buckets in display order.
var Categories = []Category{Messages, Media, Files, Cache}

// Counts tallies messages by bucket.
type Counts struct {
	Total int `json:"total"`
	Text  int `json:"text"`
	Media int `json:"media"`
	Files int `json:"files"`
	Polls int `json:"polls"`
}

// Report is a storage estimate.
type Report struct {
	Total  float64              `json:"total_mb"`
	Used   float64              `json:"used_mb"`
	Sizes  map[Category]float64 `json:"sizes_mb"`
	Counts Counts               `json:"counts"`
}

// Count tallies the messages of chats.
func Count(chats []store.Chat) Counts {
	var c Counts
	for _, chat := range chats {
		for i := range chat.Messages {
			c.Total++
			switch chat.Messages[i].Kind() {
			case store.TypeText:
				c.Text++
			case store.TypeAudio, store.TypeVideo:
				c.Media++
			case store.TypeFile:
				c.Files++
			case store.TypePoll:
				c.Polls++
			}
		}
	}
	return c
}

// Compute builds a report for chats.
func Compute(chats []store.Chat) *Report {
	counts := Count(chats)
	r := &Report{
		Total: TotalMB,
		Sizes: map[Category]float64{
			Messages: float64(counts.Text) * TextMB,
			Media:    float64(counts.Media) * MediaMB,
			Files:    float64(counts.Files) * FileMB,
			Cache:    CacheMB,
		},
		Counts: counts,
	}
	for _, size := range r.Sizes {
		r.Used += size
	}
	return r
}

// Free is the remaining space.
func (r *Report) Free() float64 {
	return r.Total - r.Used
}

// UsedPercent is used space as a share of the total, 0..100.
func (r *Report) UsedPercent() float64 {
	if r.Total <= 0 {
		return 0
	}
	return r.Used / r.Total * 100
}

// Percent is a category's share of the total, 0..100.
func (r *Report) Percent(c Category) float64 {
	if r.Total <= 0 {
		return 0
	}
	return r.Sizes[c] / r.Total * 100
}

// CanClearCache reports whether there is cache to clear.
func (r *Report) CanClearCache() bool {
	return r.Sizes[Cache] > 0
}

// ClearCache drops the cache bucket and returns the MB freed.
func (r *Report) ClearCache() float64 {
	freed := r.Sizes[Cache]
	r.Used -= freed
	r.Sizes[Cache] = 0
	return freed
}
