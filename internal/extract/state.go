package extract

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

var stateAssignRe = regexp.MustCompile(`window\.__(?:INITIAL_STATE|PRELOADED_STATE|STATE)__\s*=\s*`)

// stateScriptSelectors are script elements whose body is the state object.
var stateScriptSelectors = []string{
	`script.state-view`,
	`script[type="application/json"][data-state]`,
	`script#__NEXT_DATA__`,
}

func locateState(p *Page) any {
	for _, loc := range stateAssignRe.FindAllStringIndex(p.HTML, -1) {
		raw, ok := balanced(p.HTML, loc[1])
		if !ok {
			continue
		}
		v, err := decodeJSON(raw)
		if err != nil {
			zap.L().Debug("extract: state assignment not decodable", zap.String("url", p.URL), zap.Error(err))
			continue
		}
		return v
	}

	doc, err := p.Document()
	if err != nil {
		return nil
	}
	for _, sel := range stateScriptSelectors {
		body := strings.TrimSpace(doc.Find(sel).First().Text())
		if body == "" {
			continue
		}
		v, err := decodeJSON(body)
		if err != nil {
			zap.L().Debug("extract: state script not decodable", zap.String("url", p.URL), zap.String("selector", sel), zap.Error(err))
			continue
		}
		return v
	}
	return nil
}
