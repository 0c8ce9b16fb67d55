package catalog

// Base group tables per disperser family. The G140 extended pool also holds
// the Paschen eta/zeta windows reachable only with the F070LP filter.

var g140Groups = []Group{
	{
		Label:         "Pa eta",
		MinWavelength: 8980,
		MaxWavelength: 9060,
		Lines: []Line{
			{"He I", 8999.4379225875},
			{"He I", 8999.9904730},
			{"He I", 9011.63606005},
			{"He II", 9013.688},
			{"H I", 9017.385},
		},
	},
	{
		Label:         "Pa zeta",
		MinWavelength: 9190,
		MaxWavelength: 9290,
		Lines: []Line{
			{"He I", 9212.852746244444},
			{"He I", 9215.75788475},
			{"He I", 9227.763},
			{"H I", 9231.547},
		},
	},
	{
		Label:         "Pa delta",
		MinWavelength: 10020,
		MaxWavelength: 10100,
		Lines: []Line{
			{"He I", 10030.469746750001},
			{"He I", 10033.900158100001},
			{"H I", 10052.128},
			{"He I", 10074.806682083332},
		},
	},
	{
		Label:         "He I 10830",
		MinWavelength: 10780,
		MaxWavelength: 10900,
		Lines: []Line{
			{"He I", 10832.057471999999},
			{"He I", 10833.216751},
			{"He I", 10833.306444},
		},
	},
	{
		Label:         "Pa gamma",
		MinWavelength: 10910,
		MaxWavelength: 10990,
		Lines: []Line{
			{"He I", 10915.991686366666},
			{"He I", 10920.0525431},
			{"H I", 10941.09},
		},
	},
	{
		Label:         "Pa beta",
		MinWavelength: 12760,
		MaxWavelength: 12885,
		Lines: []Line{
			{"He I", 12788.43071063333},
			{"He I", 12793.999402500001},
			{"H I", 12821.59},
			{"He I", 12849.46706775},
			{"He I", 12849.941156},
		},
	},
	{
		Label:         "Br zeta",
		MinWavelength: 17350,
		MaxWavelength: 17430,
		Lines: []Line{
			{"He I", 17356.476694124285},
			{"He I", 17358.26905142667},
			{"H I", 17366.85},
			{"He I", 17379.688902016667},
		},
	},
	{
		Label:         "Br epsilon",
		MinWavelength: 18150,
		MaxWavelength: 18215,
		Lines: []Line{
			{"He I", 18143.99662182},
			{"He I", 18168.09013685},
			{"He I", 18170.770895771668},
			{"H I", 18179.084},
		},
	},
	{
		Label:         "Pa alpha",
		MinWavelength: 18675,
		MaxWavelength: 18820,
		Lines: []Line{
			{"He I", 18690.442142149997},
			{"He I", 18702.3180723},
			{"H I", 18756.13},
		},
	},
}

var g235Groups = []Group{
	{
		Label:         "Br eta",
		MinWavelength: 16800,
		MaxWavelength: 16850,
		Lines: []Line{
			{"He I", 16801.156549285715},
			{"He I", 16802.423072166664},
			{"H I", 16811.111},
		},
	},
	{
		Label:         "Br zeta",
		MinWavelength: 17300,
		MaxWavelength: 17440,
		Lines: []Line{
			{"He I", 17340.3448365},
			{"He I", 17356.476694124285},
			{"He I", 17358.26905142667},
			{"H I", 17366.85},
			{"He I", 17379.688902016667},
		},
	},
	{
		Label:         "Pa alpha",
		MinWavelength: 18655,
		MaxWavelength: 18840,
		Lines: []Line{
			{"He I", 18690.442142149997},
			{"He I", 18702.3180723},
			{"H I", 18756.13},
		},
	},
	{
		Label:         "He I 20580",
		MinWavelength: 20555,
		MaxWavelength: 20660,
		Lines: []Line{
			{"He I", 20586.904629999997},
			{"He I", 20592.79265},
			{"He I", 20607.463187666668},
		},
	},
	{
		Label:         "Br gamma",
		MinWavelength: 21575,
		MaxWavelength: 21750,
		Lines: []Line{
			{"He I", 21613.70985955},
			{"He I", 21622.905790999997},
			{"He I", 21647.428962849997},
			{"H I", 21661.199999999997},
		},
	},
	{
		Label:         "Br beta",
		MinWavelength: 26180,
		MaxWavelength: 26350,
		Lines: []Line{
			{"He I", 26192.12167798333},
			{"He I", 26205.6152478},
			{"He I", 26240.915984385712},
			{"H I", 26258.670000000002},
		},
	},
	{
		Label:         "Pf eta",
		MinWavelength: 30350,
		MaxWavelength: 30480,
		Lines: []Line{
			{"He I", 30373.882203465},
			{"He I", 30373.934701927996},
			{"He I", 30379.13724103666},
			{"H I", 30392.022},
		},
	},
}

var g395Groups = []Group{
	{
		Label:         "Pf eta",
		MinWavelength: 30330,
		MaxWavelength: 30520,
		Lines: []Line{
			{"He I", 30337.957093580004},
			{"He I", 30338.043565500004},
			{"He I", 30338.14237},
			{"He I", 30373.934701927996},
			{"He I", 30377.975075399998},
			{"He I", 30379.406177666668},
			{"H I", 30392.022},
			{"He I", 30399.158583},
		},
	},
	{
		Label:         "Pf gamma",
		MinWavelength: 37350,
		MaxWavelength: 37580,
		Lines: []Line{
			{"He I", 37328.38483621667},
			{"He I", 37381.94650391429},
			{"He I", 37390.70984881429},
			{"H I", 37405.56},
			{"He I", 37411.76899333333},
			{"He I", 37412.07705},
			{"He I", 37478.342826},
			{"He I", 37493.933000000005},
		},
	},
	{
		Label:         "Br alpha",
		MinWavelength: 40300,
		MaxWavelength: 40730,
		Lines: []Line{
			{"He I", 40377.31950816667},
			{"He I", 40391.224109999996},
			{"He I", 40409.4473965},
			{"He I", 40490.157808985714},
			{"He I", 40512.137976000005},
			{"H I", 40522.62},
			{"He I", 40544.661538},
			{"He I", 40545.048049000005},
			{"He I", 40563.50551566667},
			{"He I", 40574.5684},
		},
	},
	{
		Label:         "He I 42950",
		MinWavelength: 42900,
		MaxWavelength: 43100,
		Lines: []Line{
			{"He I", 42954.167},
			{"He I", 42959.1611},
			{"He I", 42959.566699999996},
			{"He I", 42959.90127},
			{"He I", 42959.905360000004},
			{"He I", 42959.90569},
		},
	},
	{
		Label:         "Hu zeta",
		MinWavelength: 43725,
		MaxWavelength: 43900,
		Lines: []Line{
			{"He I", 43739.4215275},
			{"He I", 43745.918667499995},
			{"He I", 43746.04701666667},
			{"He I", 43746.1930395},
			{"He I", 43746.2220454},
			{"He I", 43746.46316571428},
			{"H I", 43764.543999999994},
		},
	},
	{
		Label:         "Hu delta",
		MinWavelength: 51230,
		MaxWavelength: 51450,
		Lines: []Line{
			{"He I", 51263.32814807571},
			{"He I", 51271.5462147},
			{"H I", 51286.57},
		},
	},
}
