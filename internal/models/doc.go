// Package models defines the core domain models for the POS backbone.
//
// # Models
//
//   - Room: a rentable room in the catalog, charged per day
//   - FoodItem: a menu item in the catalog
//   - CartLine: one line of the in-memory working order
//   - Bill: one immutable, persisted checkout transaction
//   - BillLine: a denormalized snapshot of one purchased item within a Bill
//   - BillSummary: a list-view projection of a Bill
//
// # Design Principles
//
// Bill lines snapshot the item name and prices at checkout time instead of
// referencing catalog rows. Historical bills therefore render identically
// even if the room or food item is later edited, renamed, or deleted.
//
// Prices use float64 and are formatted to two decimal places at the edges;
// all amounts in this domain are non-negative.
package models
