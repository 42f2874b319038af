package ui

// module is one study module in the navigation list. render redraws
// the details pane from the module's state; onRune handles its keys
// and reports whether the rune was consumed.
type module struct {
	title       string
	description string
	keys        []string
	render      func(a *App)
	onRune      func(a *App, r rune) bool
}

// modules returns the study modules in menu order.
func modules() []module {
	return []module{
		{
			title: "Subnet Calculator",
			description: "Work out network, broadcast, netmask, wildcard, and usable\n" +
				"host range for any IPv4 subnet in CIDR notation.",
			keys:   []string{"<c> Calculate", "<o> Check Overlap"},
			render: (*App).renderCalculator,
			onRune: calculatorRune,
		},
		{
			title: "Binary & Routing",
			description: "See an address the way a router does: binary octets, the\n" +
				"netmask AND operation, address class, and private ranges.",
			keys:   []string{"<b> Inspect Address", "<p> Parse Binary"},
			render: (*App).renderBinary,
			onRune: binaryRune,
		},
		{
			title: "Subnet Splitter",
			description: "Carve a network into equal child subnets and check the\n" +
				"children tile the parent with no gaps or overlaps.",
			keys:   []string{"<s> Split"},
			render: (*App).renderSplitter,
			onRune: splitterRune,
		},
		{
			title: "Broadcast Storm Lab",
			description: "Watch a Who-Is broadcast propagate through five topologies\n" +
				"and see what a forwarding loop does to packet counts.",
			keys: []string{
				"<1>-<5> Topology", "<+>/<-> Devices", "<[>/<]> Hops", "<r> Run",
			},
			render: (*App).renderStormLab,
			onRune: stormLabRune,
		},
		{
			title: "BBMD Designer",
			description: "Design a BBMD deployment: place BBMDs, build BDTs, validate\n" +
				"the plan, and trace a broadcast across subnets.",
			keys: []string{
				"<a> Add BBMD", "<m> Mesh BDTs", "<v> Validate", "<f> Forward Trace", "<x> Clear",
			},
			render: (*App).renderDesigner,
			onRune: designerRune,
		},
		{
			title: "Scenarios",
			description: "Study real-world network designs: offices, campuses,\n" +
				"hospitals, and multi-site VPNs.",
			keys:   []string{"<n> Next", "<p> Previous", "<e> Add to Worksheet"},
			render: (*App).renderScenario,
			onRune: scenarioRune,
		},
	}
}

// selectModule switches the UI to the module at index.
func (a *App) selectModule(index int) {
	mods := modules()
	if index < 0 || index >= len(mods) {
		return
	}
	m := mods[index]
	a.currentModule = &m
	a.CurrentFocusKeys = m.keys
	a.PositionLine.Clear()
	a.PositionLine.SetText("Home > " + m.title)
	m.render(a)
	a.UpdateKeysLine()
}

// refresh redraws the current module.
func (a *App) refresh() {
	if a.currentModule != nil {
		a.currentModule.render(a)
	}
}
