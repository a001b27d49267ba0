package replicate

import (
	"math"

	"github.com/dskvich/supatools/pkg/domain"
	"github.com/samber/lo"
)

const (
	FluxProUltra11Model = "black-forest-labs/flux-1.1-pro-ultra"
)

var ModelToReplicateModel = map[string]string{
	domain.FluxProUltra11: FluxProUltra11Model,
}

const DefaultAspectRatio = "1:1"

type aspectRatio struct {
	name  string
	ratio float64
}

var supportedAspectRatios = []aspectRatio{
	{"21:9", 21.0 / 9}, {"16:9", 16.0 / 9}, {"3:2", 3.0 / 2}, {"4:3", 4.0 / 3},
	{"5:4", 5.0 / 4}, {"1:1", 1}, {"4:5", 4.0 / 5}, {"3:4", 3.0 / 4},
	{"2:3", 2.0 / 3}, {"9:16", 9.0 / 16}, {"9:21", 9.0 / 21},
}

// AspectRatioFor picks the supported ratio closest to width/height.
func AspectRatioFor(width, height int) string {
	if width <= 0 || height <= 0 {
		return DefaultAspectRatio
	}
	want := float64(width) / float64(height)
	best := lo.MinBy(supportedAspectRatios, func(a, b aspectRatio) bool {
		return math.Abs(a.ratio-want) < math.Abs(b.ratio-want)
	})
	return best.name
}
