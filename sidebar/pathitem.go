package sidebar

// PathItemGroups returns one group per operation tag, each holding the
// links of its operations. Groups and links follow the order described on
// CollectOperations; nothing is reordered afterwards.
func PathItemGroups(schema Schema) ([]Entry, error) {
	ops, err := CollectOperations(schema)
	if err != nil {
		return nil, err
	}
	return tagGroups(ops.Tags, schema.Config.Collapsed), nil
}

// WebhookGroups returns a single "Webhooks" group linking every webhook
// operation, or nothing when the document declares no webhooks.
func WebhookGroups(schema Schema) ([]Entry, error) {
	ops, err := CollectOperations(schema)
	if err != nil {
		return nil, err
	}
	return webhookGroups(ops.Webhooks, schema.Config.Collapsed), nil
}

func tagGroups(tags []TagOperations, collapsed bool) []Entry {
	entries := make([]Entry, 0, len(tags))
	for _, tag := range tags {
		entries = append(entries, linkGroup(tag.Tag.Name, tag.Operations, collapsed))
	}
	return entries
}

func webhookGroups(ops []OperationLink, collapsed bool) []Entry {
	if len(ops) == 0 {
		return nil
	}
	return []Entry{linkGroup(WebhooksLabel, ops, collapsed)}
}

func linkGroup(label string, ops []OperationLink, collapsed bool) Group {
	g := Group{
		Label:     label,
		Entries:   make([]Entry, 0, len(ops)),
		Collapsed: collapsed,
	}
	for _, op := range ops {
		g.Entries = append(g.Entries, op.Link)
	}
	return g
}
