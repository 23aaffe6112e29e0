package station

import "github.com/theoremus-urban-solutions/subway-validator/internal/elementindex"

// Transfer is a cluster of at least two StopAreas between which passengers
// can interchange, built from a stop_area_group relation. A StopArea
// carries at most one transfer id; the last stop_area_group to claim it
// wins, with earlier claims reported as a warning by the resolver.
type Transfer struct {
	Id      string
	Members []elementindex.Id // StopArea ids
}
