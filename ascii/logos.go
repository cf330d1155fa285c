package ascii

// Art data. Lines carry no escape codes; the renderer colors them from the
// palette, one index per line, cycling when the palette is shorter.

var builtin = []ArtBlock{
	// Tux, shown for any system without a specific logo.
	{
		Name:   "linux",
		Colors: []int{3, 7},
		Lines: []string{
			"        #####",
			"       #######",
			"       ##O#O##",
			"       #VVVVV#",
			"       ##>|<##",
			"      #########",
			"     ###########",
			"    #############",
			"   ###############",
			"  #################",
			" ###################",
			"#####################",
			"#####################",
			"#####################",
			" ###################",
			"  #################",
			"   ###############",
		},
	},
	{
		Name:   "arch",
		Colors: []int{6, 4},
		Lines: []string{
			"                   -`",
			"                  .o+`",
			"                 `ooo/",
			"                `+oooo:",
			"               `+oooooo:",
			"               -+oooooo+:",
			"             `/:-:++oooo+:",
			"            `/++++/+++++++:",
			"           `/++++++++++++++:",
			"          `/+++ooooooooo+++/",
			"         ./ooosssso++osssssso+`",
			"        .oossssso-````/ossssss+`",
			"       -osssssso.      :ssssssso.",
			"      :osssssss/        osssso+++.",
			"     /ossssssss/        +ssssooo/-",
			"   `/ossssso+/:-        -:/+osssso+-",
			"  `+sso+:-`                 `.-/+oso:",
			" `++:.                           `-/+/",
			" .`                                 `/",
		},
	},
	{
		Name:   "debian",
		Colors: []int{1, 7},
		Lines: []string{
			"       _,met$$$$$gg.",
			"    ,g$$$$$$$$$$$$$$$P.",
			"  ,g$$P\"     \"\"\"Y$$.\".",
			" ,$$P'              `$$$.",
			"',$$P       ,ggs.     `$$b:",
			"`d$$'     ,$P\"'   .    $$$",
			" $$P      d$'     ,    $$P",
			" $$:      $$.   -    ,d$$'",
			" $$;      Y$b._   _,d$P'",
			" Y$$.    `.`\"Y$$$$P\"'",
			" `$$b      \"-.__",
			"  `Y$$",
			"   `Y$$.",
			"     `$$b.",
			"       `Y$$b.",
			"          `\"Y$b._",
			"              `\"\"\"",
		},
	},
	{
		Name:   "ubuntu",
		Colors: []int{1, 7},
		Lines: []string{
			"         _",
			"     ---(_)",
			" _/  ---  \\",
			"(_) |   |",
			"  \\  --- _/",
			"     ---(_)",
		},
	},
	{
		Name:   "fedora",
		Colors: []int{4, 7},
		Lines: []string{
			"             .',;::::;,'.",
			"         .';;;;;;;;;;;;;,'.",
			"      .,;;;;;;;;;;;;;;;;;;;,.",
			"    .,;;;;;;;;;;;;;;;;;;;;;;;;,",
			"   .;;;;;;;;;;;;;;;;;;;;;;;;;;;;;,",
			"  .;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;,",
			" .;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;,",
			".;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;,",
			";;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;",
			";;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;",
			";;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;",
			";;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;",
			".;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;",
			" ';;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;'",
			"  ';;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;'",
			"    ';;;;;;;;;;;;;;;;;;;;;;;;;;;;;;'",
			"        '''''''''''''''''''''",
		},
	},
	{
		Name:   "alpine",
		Colors: []int{4},
		Lines: []string{
			"       .hddddddddddddddddddddddh.",
			"      :dddddddddddddddddddddddddd:",
			"     /dddddddddddddddddddddddddddd/",
			"    +dddddddddddddddddddddddddddddd+",
			"  `sdddddddddddddddddddddddddddddddds`",
			" `ydddddddddddd++hdddddddddddddddddddy`",
			".hddddddddddd+`  `+ddddh:-sdddddddddddh.",
			"hdddddddddd+`      `+y:    .sddddddddddh",
			"ddddddddh+`   `//`   `.`     -sddddddddd",
			"ddddddh+`   `/hddh/`   `:s-    -sddddddd",
			"ddddh+`   `/+/dddddh/`   `+s-    -sddddd",
			"ddd+`   `/o` :dddddddh/`   `oy-    .yddd",
			"hdddyo+ohddyosdddddddddho+oydddy++ohdddh",
			".hddddddddddddddddddddddddddddddddddddh.",
			" `yddddddddddddddddddddddddddddddddddy`",
			"  `sdddddddddddddddddddddddddddddddds`",
			"    +dddddddddddddddddddddddddddddd+",
			"     /dddddddddddddddddddddddddddd/",
			"      :dddddddddddddddddddddddddd:",
			"       .hddddddddddddddddddddddh.",
		},
	},
	{
		Name:   "manjaro",
		Colors: []int{2},
		Lines: []string{
			"██████████████████  ████████",
			"██████████████████  ████████",
			"██████████████████  ████████",
			"██████████████████  ████████",
			"████████            ████████",
			"████████  ████████  ████████",
			"████████  ████████  ████████",
			"████████  ████████  ████████",
			"████████  ████████  ████████",
			"████████  ████████  ████████",
			"████████  ████████  ████████",
			"████████  ████████  ████████",
			"████████  ████████  ████████",
			"████████  ████████  ████████",
		},
	},
	{
		Name:   "macos",
		Colors: []int{2, 3, 1, 5, 4, 6},
		Lines: []string{
			"                    'c.",
			"                 ,xNMM.",
			"               .OMMMMo",
			"               OMMM0,",
			"     .;loddo:' loolloddol;.",
			"   cKMMMMMMMMMMNWMMMMMMMMMM0:",
			" .KMMMMMMMMMMMMMMMMMMMMMMMWd.",
			" XMMMMMMMMMMMMMMMMMMMMMMMX.",
			";MMMMMMMMMMMMMMMMMMMMMMMM:",
			":MMMMMMMMMMMMMMMMMMMMMMMM:",
			".MMMMMMMMMMMMMMMMMMMMMMMMX.",
			" kMMMMMMMMMMMMMMMMMMMMMMMMWd.",
			" .XMMMMMMMMMMMMMMMMMMMMMMMMMMk",
			"  .XMMMMMMMMMMMMMMMMMMMMMMMMK.",
			"    kMMMMMMMMMMMMMMMMMMMMMMd",
			"     ;KMMMMMMMWXXWMMMMMMMk.",
			"       .cooc,.    .,coo:.",
		},
	},
	{
		Name:   "freebsd",
		Colors: []int{1},
		Lines: []string{
			"```                        `",
			"  ` `.....---.......--.```   -/",
			"  +o   .--`         /y:`      +.",
			"   yo`:.            :o      `+-",
			"    y/               -/`   -o/",
			"   .-                  ::/sy+:.",
			"   /                     `--  /",
			"  `:                          :`",
			"  `:                          :`",
			"   /                          /",
			"   .-                        -.",
			"    --                      -.",
			"     `:`                  `:`",
			"       .--             `--.",
			"          .---.....----.",
		},
	},
	// Windows 10 and 11 client editions.
	{
		Name:   "windows",
		Colors: []int{6},
		Lines: []string{
			"                               ..,,",
			"                    ....,,:;+ccllll",
			"      ...,,+:;  cllllllllllllllllll",
			",cclllllllllll  lllllllllllllllllll",
			"llllllllllllll  lllllllllllllllllll",
			"llllllllllllll  lllllllllllllllllll",
			"llllllllllllll  lllllllllllllllllll",
			"llllllllllllll  lllllllllllllllllll",
			"llllllllllllll  lllllllllllllllllll",
			"",
			"llllllllllllll  lllllllllllllllllll",
			"llllllllllllll  lllllllllllllllllll",
			"llllllllllllll  lllllllllllllllllll",
			"llllllllllllll  lllllllllllllllllll",
			"llllllllllllll  lllllllllllllllllll",
			"`'ccllllllllll  lllllllllllllllllll",
			"       `' \\*::  :ccllllllllllllllll",
			"                       ````''*::cll",
			"                                 ``",
		},
	},
	// Windows Server editions; blue to tell servers apart from clients.
	{
		Name:   "windows_server",
		Colors: []int{4},
		Lines: []string{
			"        ,.=:!!t3Z3z.,",
			"       :tt:::tt333EE3",
			"       Et:::ztt33EEEL @Ee.,      ..,",
			"      ;tt:::tt333EE7 ;EEEEEEttttt33#",
			"     :Et:::zt333EEQ. $EEEEEttttt33QL",
			"     it::::tt333EEF @EEEEEEttttt33F",
			"    ;3=*^```\"*4EEV :EEEEEEttttt33@.",
			"    ,.=::::!t=., ` @EEEEEEtttz33QF",
			"   ;::::::::zt33)   \"4EEEtttji3P*",
			"  :t::::::::tt33.:Z3z..  `` ,..g.",
			"  i::::::::zt33F AEEEtttt::::ztF",
			" ;:::::::::t33V ;EEEttttt::::t3",
			" E::::::::zt33L @EEEtttt::::z3F",
			"{3=*^```\"*4E3) ;EEEtttt:::::tZ`",
			"             ` :EEEEtttt::::z7",
			"                 \"VEzjt:;;z>*`",
		},
	},
	// A small four-pane logo for short terminals.
	{
		Name:   "windows_compact",
		Colors: []int{1, 1, 1, 1, 1, 1, 2, 2, 2, 2},
		Lines: []string{
			"################  ################",
			"################  ################",
			"################  ################",
			"################  ################",
			"################  ################",
			"",
			"################  ################",
			"################  ################",
			"################  ################",
			"################  ################",
		},
	},
}
