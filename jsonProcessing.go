package main

import json "github.com/KevinWang15/go-json5"

func parseJsonTable(data []byte) (map[string]interface{}, error) {
	var jsonTable map[string]interface{}
	err := json.Unmarshal(data, &jsonTable)
	return jsonTable, err
}

func getLeafValue(jsonTable map[string]interface{}, path ...string) (interface{}, bool) {
	var cur interface{} = jsonTable
	for _, p := range path {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = m[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func validateJsonFileAndFillDesign(jsonTable map[string]interface{}, design *LensDesign) (string, bool) {
	msg := "No problem found in json file" // Initialize msg to presumed success.

	showInput, ok := getLeafValue(jsonTable, "show_input_bool")
	if !ok {
		design.ShowInput = false // default to false if this field is missing
	} else {
		design.ShowInput, ok = showInput.(bool)
		if !ok {
			msg = "show_input_bool: is not a bool"
			return msg, false
		}
	}

	windowSize, ok := getLeafValue(jsonTable, "window_size_pixels")
	if !ok {
		design.WindowSizePixels = 500 // Default to 500 pixels if this field is missing
	} else {
		wSize, ok := windowSize.(float64)
		if !ok {
			msg = "window_size_pixels: is not a float64"
			return msg, false
		}
		design.WindowSizePixels = int(wSize)
	}

	title, ok := getLeafValue(jsonTable, "title")
	if !ok {
		design.Title = "GRIN lens"
	} else {
		design.Title, ok = title.(string)
		if !ok {
			msg = "title: is not a string"
			return msg, false
		}
	}

	n0, ok := getLeafValue(jsonTable, "n_0")
	if !ok {
		msg = "n_0: not found (required)"
		return msg, false
	}
	design.N0, ok = n0.(float64)
	if !ok {
		msg = "n_0: is not a float64"
		return msg, false
	}

	pitch, ok := getLeafValue(jsonTable, "pitch")
	if !ok {
		msg = "pitch: not found (required)"
		return msg, false
	}
	design.Pitch, ok = pitch.(float64)
	if !ok {
		msg = "pitch: is not a float64"
		return msg, false
	}

	length, ok := getLeafValue(jsonTable, "length_mm")
	if !ok {
		msg = "length_mm: not found (required)"
		return msg, false
	}
	design.LengthMm, ok = length.(float64)
	if !ok {
		msg = "length_mm: is not a float64"
		return msg, false
	}

	diameter, ok := getLeafValue(jsonTable, "diameter_mm")
	if !ok {
		msg = "diameter_mm: not found (required)"
		return msg, false
	}
	design.DiameterMm, ok = diameter.(float64)
	if !ok {
		msg = "diameter_mm: is not a float64"
		return msg, false
	}

	rayCount, ok := getLeafValue(jsonTable, "ray_fan_count")
	if !ok {
		design.RayFanCount = 11 // Default number of rays in the fan
	} else {
		count, ok := rayCount.(float64)
		if !ok {
			msg = "ray_fan_count: is not a float64"
			return msg, false
		}
		design.RayFanCount = int(count)
	}

	curvePoints, ok := getLeafValue(jsonTable, "curve_points")
	if !ok {
		design.CurvePoints = 0 // 0 selects the grin package default (40)
	} else {
		n, ok := curvePoints.(float64)
		if !ok {
			msg = "curve_points: is not a float64"
			return msg, false
		}
		design.CurvePoints = int(n)
	}

	rayAngle, ok := getLeafValue(jsonTable, "ray_fan_angle_radians")
	if !ok {
		design.RayFanAngleRadians = 0.0 // Default to a collimated fan
	} else {
		design.RayFanAngleRadians, ok = rayAngle.(float64)
		if !ok {
			msg = "ray_fan_angle_radians: is not a float64"
			return msg, false
		}
	}

	// Object-point parameters are optional as a group: if object_z_mm is
	// present, the other two must be given as well.
	objectZ, ok := getLeafValue(jsonTable, "object_z_mm")
	if ok {
		design.ObjectGiven = true
		design.ObjectZMm, ok = objectZ.(float64)
		if !ok {
			msg = "object_z_mm: is not a float64"
			return msg, false
		}

		objectR, ok := getLeafValue(jsonTable, "object_r_mm")
		if !ok {
			msg = "object_r_mm: required when object_z_mm is given"
			return msg, false
		}
		design.ObjectRMm, ok = objectR.(float64)
		if !ok {
			msg = "object_r_mm: is not a float64"
			return msg, false
		}

		rLens, ok := getLeafValue(jsonTable, "object_ray_r_lens_mm")
		if !ok {
			msg = "object_ray_r_lens_mm: required when object_z_mm is given"
			return msg, false
		}
		design.ObjectRayRLensMm, ok = rLens.(float64)
		if !ok {
			msg = "object_ray_r_lens_mm: is not a float64"
			return msg, false
		}
	}

	return msg, true
}
