// Package document holds the explicit document state every operation works
// on: artboards, layers of items, the current selection and document-wide
// settings such as the color space and ruler units.
//
// # JSON Format
//
//	{
//	  "name": "poster",
//	  "color_space": "cmyk",
//	  "ruler_units": "mm",
//	  "artboards": [{"name": "A4", "rect": [0, 841.89, 595.28, 0]}],
//	  "layers": [{
//	    "name": "Layer 1",
//	    "items": [{
//	      "id": "r1",
//	      "kind": "path",
//	      "closed": true,
//	      "points": [{"anchor": [0, 10]}, {"anchor": [10, 10]}, {"anchor": [10, 0]}],
//	      "fill": {"cmyk": [0, 100, 100, 0]},
//	      "stroke": {"gray": 100},
//	      "stroke_width": 2
//	    }]
//	  }],
//	  "selection": ["r1"]
//	}
//
// Rectangles use [left, top, right, bottom] in points with Y pointing up.
// Path points default their handles to the anchor and their type to
// "corner". An item is stroked or filled when the matching color is set.
// Items without an "id" get a fresh one on import.
package document
