package tripnode

import "fmt"

func FinalizeItinerary(in *GraphState) (GraphOutput, error) {
	if in == nil || in.Itinerary == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph produced no itinerary", ErrNoItinerary)
	}
	return GraphOutput{Itinerary: in.Itinerary}, nil
}
