package extract

import (
	"github.com/CodeTest-git/testovoe-otsivy/internal/model"
	"github.com/CodeTest-git/testovoe-otsivy/internal/sanitize"
)

// Config describes the CDN layout and output sizes of the listing pages.
type Config struct {
	// SiteURL prefixes relative profile links.
	SiteURL string
	// LogoCDNPrefixes are host/path prefixes reserved for business logos.
	LogoCDNPrefixes []string
	// CatalogThumbPrefixes are low-quality catalog thumbnails never used as
	// a logo.
	CatalogThumbPrefixes []string
	// PhotoCDNPrefixes are the gallery prefixes, business photos first.
	PhotoCDNPrefixes []string
	// AvatarCDNPrefix is the prefix of reviewer avatars.
	AvatarCDNPrefix string
	AvatarSize      string
	LogoSize        string
	PhotoFullSize   string
	PhotoThumbSize  string
	// MaxPhotos bounds the gallery returned to callers.
	MaxPhotos int
}

// DefaultConfig returns the layout used by the public listing pages.
func DefaultConfig() Config {
	return Config{
		SiteURL:              "https://yandex.ru",
		LogoCDNPrefixes:      []string{"avatars.mds.yandex.net/get-sprav-logo/"},
		CatalogThumbPrefixes: []string{"avatars.mds.yandex.net/get-sprav-products/", "avatars.mds.yandex.net/get-goods/"},
		PhotoCDNPrefixes:     []string{"avatars.mds.yandex.net/get-altay/", "avatars.mds.yandex.net/get-ugc-review/"},
		AvatarCDNPrefix:      "avatars.mds.yandex.net/get-yapic/",
		AvatarSize:           "islands-68",
		LogoSize:             "S",
		PhotoFullSize:        "XXXL",
		PhotoThumbSize:       "M",
		MaxPhotos:            12,
	}
}

// Extractor runs the extraction strategies against fetched pages. It holds
// no per-page state and is safe for concurrent use.
type Extractor struct {
	cfg     Config
	san     *sanitize.Sanitizer
	reviews *Chain
	cdn     *cdnPatterns
}

// New builds an Extractor with the default review strategy order: DOM
// blocks, embedded state, inline fragments.
func New(cfg Config, san *sanitize.Sanitizer) *Extractor {
	if cfg.MaxPhotos <= 0 {
		cfg.MaxPhotos = DefaultConfig().MaxPhotos
	}
	e := &Extractor{
		cfg: cfg,
		san: san,
		cdn: compileCDN(cfg),
	}
	e.reviews = NewChain(
		Strategy{Name: "html_blocks", Extract: e.htmlBlockReviews},
		Strategy{Name: "state_blob", Extract: e.stateReviews},
		Strategy{Name: "inline_fragments", Extract: e.inlineReviews},
	)
	return e
}

// Config returns the extractor configuration.
func (e *Extractor) Config() Config {
	return e.cfg
}

// Reviews returns the review candidates of the first strategy that yields
// any, plus that strategy's name.
func (e *Extractor) Reviews(p *Page) ([]model.RawReview, string) {
	return e.reviews.Run(p)
}
