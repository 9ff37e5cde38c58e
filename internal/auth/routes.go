package auth

import (
	"fmt"
	"strings"

	"github.com/fpda/backend/internal/models"
	"golang.org/x/exp/slices"
)

// permissionRouteMap maps a module and sub module name to the
// dashboard route the client unlocks for it.
var permissionRouteMap = map[string]string{
	// Master
	"master:location":        "/dashboard/location",
	"master:item_category":   "/dashboard/item-category",
	"master:unit":            "/dashboard/unit",
	"master:item":            "/dashboard/item",
	"master:supplier":        "/dashboard/supplier",
	"master:recipe_type":     "/dashboard/recipe-type",
	"master:recipe_for_a_kg": "/dashboard/recipe",
	// Delivery Plan
	"delivery_plan:schedule":    "/dashboard/schedule",
	"delivery_plan:requirement": "/dashboard/requirement",
	// Preparation
	"preparation:day_requirements":     "/dashboard/day-requirements",
	"preparation:material_receipt":     "/dashboard/material-receipt",
	"preparation:request_for_supplier": "/dashboard/request-supplier",
	// Packing and cooking have no sub modules
	"packing:":        "/dashboard/packing",
	"packing:packing": "/dashboard/packing",
	"cooking:":        "/dashboard/cooking",
	"cooking:cooking": "/dashboard/cooking",
	// Cleaning
	"cleaning:material":         "/dashboard/cleaning/material",
	"cleaning:vessel":           "/dashboard/cleaning/vessel",
	"cleaning:preparation_area": "/dashboard/cleaning/prep",
	"cleaning:packing_area":     "/dashboard/cleaning/pack",
	// Distribution
	"distribution:food_allocation": "/dashboard/food-allocation",
	"distribution:delivery":        "/dashboard/delivery",
	// View Media has no sub modules
	"view_media:":           "/dashboard/view-media",
	"view_media:view_media": "/dashboard/view-media",
	// Settings
	"settings:module_master": "/dashboard/settings/module-master",
	"settings:user_rights":   "/dashboard/settings/user-rights",
}

// AllowedRoutes returns the sorted list of dashboard routes the given
// modules unlock. The dashboard home is always included.
func AllowedRoutes(modules []models.AppModule) []string {
	set := map[string]struct{}{
		"/dashboard": {},
	}

	for _, module := range modules {
		key := fmt.Sprintf("%s:%s", strings.ToLower(module.Name), strings.ToLower(module.SubModuleName))

		if route, ok := permissionRouteMap[key]; ok {
			set[route] = struct{}{}
		}
	}

	routes := make([]string, 0, len(set))
	for route := range set {
		routes = append(routes, route)
	}
	slices.Sort(routes)

	return routes
}
