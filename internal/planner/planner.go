// Package planner turns a classified intent into one query string per
// retrieval channel. Any intent that failed to extract the entities its
// template needs falls back to the raw query verbatim; no intent suppresses
// a channel.
package planner

import (
	"fmt"

	"github.com/forkcast/forkcast/internal/schema"
)

// Plan derives the forum and web queries for one user turn.
func Plan(intent schema.Intent, rawQuery string) schema.ChannelPlan {
	switch intent.Kind {
	case schema.IntentRestaurantLookup:
		name := intent.RestaurantName
		if name == "" {
			name = rawQuery
		}
		return schema.ChannelPlan{
			ForumQuery: fmt.Sprintf("%s restaurant review", name),
			WebQuery:   fmt.Sprintf("%s restaurant reviews menu", name),
		}

	case schema.IntentCuisineSearch:
		if intent.Cuisine == "" {
			break
		}
		if intent.Location != "" {
			return schema.ChannelPlan{
				ForumQuery: fmt.Sprintf("best %s restaurant %s", intent.Cuisine, intent.Location),
				WebQuery:   fmt.Sprintf("best %s restaurants %s reviews recommendations 2024", intent.Cuisine, intent.Location),
			}
		}
		return schema.ChannelPlan{
			ForumQuery: fmt.Sprintf("best %s restaurant", intent.Cuisine),
			WebQuery:   fmt.Sprintf("best %s restaurants reviews recommendations 2024", intent.Cuisine),
		}

	case schema.IntentComparison:
		if !intent.HasComparisonPair() {
			break
		}
		a, b := intent.ComparisonPair[0], intent.ComparisonPair[1]
		return schema.ChannelPlan{
			ForumQuery: fmt.Sprintf("%s vs %s restaurant", a, b),
			WebQuery:   fmt.Sprintf("%s vs %s restaurant comparison", a, b),
		}

	case schema.IntentDishRecommendation:
		if intent.RestaurantName == "" {
			break
		}
		return schema.ChannelPlan{
			ForumQuery: fmt.Sprintf("%s best dishes what to order", intent.RestaurantName),
			WebQuery:   fmt.Sprintf("%s best dishes menu recommendations", intent.RestaurantName),
		}
	}

	return schema.ChannelPlan{ForumQuery: rawQuery, WebQuery: rawQuery}
}
