package report

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/UnitVectorY-Labs/releasereadiness/internal/models"
)

// ExtractBadges parses a rendered report and returns its linked images in
// document order.
func ExtractBadges(content []byte) []models.Badge {
	var badges []models.Badge

	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	doc := md.Parser().Parse(text.NewReader(content))

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		link, ok := n.(*ast.Link)
		if !ok {
			return ast.WalkContinue, nil
		}
		for child := link.FirstChild(); child != nil; child = child.NextSibling() {
			if img, ok := child.(*ast.Image); ok {
				badge := models.Badge{
					AltText:   string(img.Text(content)),
					ImageURL:  string(img.Destination),
					TargetURL: string(link.Destination),
				}
				badge.FillHosts()
				badges = append(badges, badge)
			}
		}
		return ast.WalkSkipChildren, nil
	})

	return badges
}
