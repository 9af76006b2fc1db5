package routes

const validRouteFile = `# a comment
class netroutes::routes {               # comment
  network_route { '172.17.67.0/24':     # comment
    ensure    => 'present',             # comment
    gateway   => '10.0.2.2',            # comment
    interface => 'eth0',                # comment
    netmask   => '255.255.255.0',       # comment
    network   => '172.17.67.0',         # comment
    options   => 'table 200',           # comment
  }  # comment
  network_route { 'default':
    ensure    => 'present',
    # ensure    => 'absent',
    gateway   => '10.0.2.2',
    # gateway   => '10.0.3.3',
    interface => $appout,
    netmask   => '0.0.0.0',
    network   => 'default'
  }  # end route
}  # end file
`

const missingHeaderFile = `# a comment
network_route { '172.17.67.0/24':     # comment
  ensure    => 'present',             # comment
  network   => '172.17.67.0',         # comment
}  # comment
`

const missingOpenBraceFile = `# a comment
class netroutes::routes                 # comment
  network_route   '172.17.67.0/24':     # comment
    ensure    => 'present',             # comment
} # end file
`

const missingCloseBraceFile = `# a comment
class netroutes::routes {               # comment
  network_route { '172.17.67.0/24':     # comment
    ensure    => 'present',             # comment
    gateway   => '10.0.2.2',            # comment
    interface => 'eth0',                # comment
    netmask   => '255.255.255.0',       # comment
    network   => '172.17.67.0',         # comment
    options   => 'table 200',           # comment
# end file
`

func validRoutes() []*Record {
	return []*Record{
		{
			Name:      "172.17.67.0/24",
			Ensure:    "present",
			Gateway:   "10.0.2.2",
			Interface: "eth0",
			Netmask:   "255.255.255.0",
			Network:   "172.17.67.0",
			Options:   "table 200",
		},
		{
			Name:      "default",
			Ensure:    "present",
			Gateway:   "10.0.2.2",
			Interface: "$appout",
			Netmask:   "0.0.0.0",
			Network:   "default",
		},
	}
}

func equalRecords(a, b []*Record) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
