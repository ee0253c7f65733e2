package extract

import (
	"sort"

	"github.com/CodeTest-git/testovoe-otsivy/internal/model"
)

// Photos returns gallery photos in first-seen order, one per distinct base
// CDN path, capped at MaxPhotos+1. The spare slot lets the caller promote
// the first photo to a logo and still fill the gallery.
func (e *Extractor) Photos(p *Page) []model.Photo {
	limit := e.cfg.MaxPhotos + 1
	flat := p.Flat()

	type hit struct {
		pos  int
		base string
	}
	var hits []hit
	for _, re := range e.cdn.photos {
		for _, loc := range re.FindAllStringIndex(flat, -1) {
			hits = append(hits, hit{pos: loc[0], base: BaseCDNPath(flat[loc[0]:loc[1]])})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	seen := make(map[string]bool, len(hits))
	photos := make([]model.Photo, 0, limit)
	for _, h := range hits {
		if seen[h.base] {
			continue
		}
		seen[h.base] = true
		photos = append(photos, e.photo(h.base))
		if len(photos) == limit {
			break
		}
	}
	return photos
}

func (e *Extractor) photo(base string) model.Photo {
	return model.Photo{
		URL:       base + "/" + e.cfg.PhotoFullSize,
		Thumbnail: base + "/" + e.cfg.PhotoThumbSize,
	}
}

// RemoveBase drops photos whose base CDN path equals that of u.
func RemoveBase(photos []model.Photo, u string) []model.Photo {
	base := BaseCDNPath(u)
	out := photos[:0:0]
	for _, ph := range photos {
		if BaseCDNPath(ph.URL) == base {
			continue
		}
		out = append(out, ph)
	}
	return out
}
