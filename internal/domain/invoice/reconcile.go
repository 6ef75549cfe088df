package invoice

// Pure reconciliation arithmetic. Kept free of storage concerns so the
// quantity rules can be tested in isolation.

// quantityDeltas builds code → (newQty − oldQty) for the union of codes
// touched by either line list. Codes present on only one side default to
// zero on the other. Duplicate codes within a side accumulate.
func quantityDeltas(oldLines, newLines []Line) map[string]int {
	oldMap := make(map[string]int, len(oldLines))
	for _, l := range oldLines {
		oldMap[l.Code] += l.Quantity
	}

	newMap := make(map[string]int, len(newLines))
	for _, l := range newLines {
		newMap[l.Code] += l.Quantity
	}

	deltas := make(map[string]int, len(oldMap)+len(newMap))
	for code, oldQty := range oldMap {
		deltas[code] = newMap[code] - oldQty
	}
	for code, newQty := range newMap {
		if _, seen := oldMap[code]; !seen {
			deltas[code] = newQty
		}
	}

	return deltas
}

// signedAdjustment converts a quantity delta into the stock adjustment
// for the given invoice type: purchases add to inventory, sales remove.
func signedAdjustment(t Type, delta int) int {
	if t == TypeSale {
		return -delta
	}
	return delta
}

// reversalAdjustment is the stock adjustment that undoes a stored line:
// a purchase line is subtracted back out, a sale line is added back.
// Applying it goes through item.AdjustQuantity, which clamps at zero.
func reversalAdjustment(t Type, quantity int) int {
	return signedAdjustment(t, -quantity)
}
