package colors

// Kanagawa colors shared by the wave and lotus presets
type kanagawa struct {
	sumiInk4     string
	fujiWhite    string
	fujiGray     string
	oniViolet    string
	crystalBlue  string
	springGreen  string
	carpYellow   string
	roninYellow  string
	autumnRed    string
	winterRed    string
	waveBlue2    string
	winterYellow string

	lotusInk1    string
	lotusGray3   string
	lotusViolet4 string
	lotusBlue4   string
	lotusGreen   string
	lotusYellow2 string
	lotusOrange2 string
	lotusYellow4 string
	lotusRed3    string
	lotusRed4    string
	lotusTeal3   string
	lotusBlue2   string
	lotusWhite4  string
}

var palette = kanagawa{
	sumiInk4:     "#2A2A37",
	fujiWhite:    "#DCD7BA",
	fujiGray:     "#727169",
	oniViolet:    "#957FB8",
	crystalBlue:  "#7E9CD8",
	springGreen:  "#98BB6C",
	carpYellow:   "#E6C384",
	roninYellow:  "#FF9E3B",
	autumnRed:    "#C34043",
	winterRed:    "#43242B",
	waveBlue2:    "#2D4F67",
	winterYellow: "#49443C",

	lotusInk1:    "#545464",
	lotusGray3:   "#8A8980",
	lotusViolet4: "#624C83",
	lotusBlue4:   "#4D699B",
	lotusGreen:   "#6F894E",
	lotusYellow2: "#836F4A",
	lotusOrange2: "#E98A00",
	lotusYellow4: "#F9E7C0",
	lotusRed3:    "#E82424",
	lotusRed4:    "#D9A594",
	lotusTeal3:   "#5A7785",
	lotusBlue2:   "#B5CBD2",
	lotusWhite4:  "#E4D794",
}
