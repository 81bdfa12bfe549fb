// Package io reads and writes dashboards and operation scripts.
//
// # Documents
//
// A dashboard document is the JSON form of [persist.Document]:
//
//	{
//	  "version": 1,
//	  "grid": {"columns": 24, "rows": 12},
//	  "widgets": [
//	    {"id": "clock-1", "widgetType": "clock", "x": 0, "y": 0,
//	     "width": 3, "height": 2, "locked": false, "settings": {...}}
//	  ]
//	}
//
// Use [ImportJSON] or [ReadJSON] to read one and [ExportJSON] or [WriteJSON]
// to write one. Reading checks the JSON only; pass the result through
// [persist.Recover] before trusting it.
//
// # Operation scripts
//
// A script is a list of tagged operations in JSON or YAML:
//
//	- type: addWidget
//	  widgetType: clock
//	  layout: {x: 0, y: 0, width: 3, height: 2}
//	- type: moveWidget
//	  id: clock-1
//	  x: 4
//
// [ReadOperations] decodes every entry with the same rules as
// [layout.DecodeOperation]; the first malformed entry fails the whole script.
//
// [persist.Document]: github.com/matzehuels/deskgrid/pkg/persist.Document
// [persist.Recover]: github.com/matzehuels/deskgrid/pkg/persist.Recover
// [layout.DecodeOperation]: github.com/matzehuels/deskgrid/pkg/layout.DecodeOperation
package io
