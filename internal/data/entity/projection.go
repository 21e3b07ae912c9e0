package entity

// ItemsOf projects review.item across reviews, keeping review order and
// duplicates. Reviews whose item is missing from items are skipped.
func ItemsOf(reviews []*Review, items map[int64]*Item) []*Item {
	out := make([]*Item, 0, len(reviews))
	for _, r := range reviews {
		if it, ok := items[r.ItemID]; ok {
			out = append(out, it)
		}
	}
	return out
}

// CustomersOf projects review.customer across reviews.
func CustomersOf(reviews []*Review, customers map[int64]*Customer) []*Customer {
	out := make([]*Customer, 0, len(reviews))
	for _, r := range reviews {
		if c, ok := customers[r.CustomerID]; ok {
			out = append(out, c)
		}
	}
	return out
}

// ItemIDs returns the distinct item ids referenced by reviews.
func ItemIDs(reviews []*Review) []int64 {
	seen := make(map[int64]struct{}, len(reviews))
	ids := make([]int64, 0, len(reviews))
	for _, r := range reviews {
		if _, ok := seen[r.ItemID]; !ok {
			seen[r.ItemID] = struct{}{}
			ids = append(ids, r.ItemID)
		}
	}
	return ids
}

// CustomerIDs returns the distinct customer ids referenced by reviews.
func CustomerIDs(reviews []*Review) []int64 {
	seen := make(map[int64]struct{}, len(reviews))
	ids := make([]int64, 0, len(reviews))
	for _, r := range reviews {
		if _, ok := seen[r.CustomerID]; !ok {
			seen[r.CustomerID] = struct{}{}
			ids = append(ids, r.CustomerID)
		}
	}
	return ids
}

// IndexCustomers keys customers by id.
func IndexCustomers(customers []*Customer) map[int64]*Customer {
	m := make(map[int64]*Customer, len(customers))
	for _, c := range customers {
		m[c.ID] = c
	}
	return m
}

// IndexItems keys items by id.
func IndexItems(items []*Item) map[int64]*Item {
	m := make(map[int64]*Item, len(items))
	for _, it := range items {
		m[it.ID] = it
	}
	return m
}

// GroupByCustomer buckets reviews by customer id, keeping their order.
func GroupByCustomer(reviews []*Review) map[int64][]*Review {
	m := make(map[int64][]*Review)
	for _, r := range reviews {
		m[r.CustomerID] = append(m[r.CustomerID], r)
	}
	return m
}

// GroupByItem buckets reviews by item id, keeping their order.
func GroupByItem(reviews []*Review) map[int64][]*Review {
	m := make(map[int64][]*Review)
	for _, r := range reviews {
		m[r.ItemID] = append(m[r.ItemID], r)
	}
	return m
}
