// Package routes reads and writes the route block of a Puppet manifest.
//
// The manifest holds a single class whose body is a list of network_route
// resources:
//
//	class netroutes::routes {
//	  network_route { '172.17.67.0/24':
//	    ensure    => 'present',
//	    gateway   => '10.0.2.2',
//	    interface => 'eth0',
//	    netmask   => '255.255.255.0',
//	    network   => '172.17.67.0',
//	    options   => 'table 200',
//	  }
//	}
//
// A Scanner recognizes the four kinds of lines the grammar is made of. A
// Parser walks a stream of lines and yields one Record per block; a missing
// class header or the end of the blocks ends the sequence with io.EOF, while
// an unterminated block is an EndTokenNotFound error. A Builder renders a
// record slice back into a complete manifest and can back up the previous
// file first.
//
// The remaining functions are pure operations over record slices: Find and
// Delete filter by a field, FindExisting applies an IdentityPolicy, and
// Validate/ValidateBatch compare caller input with stored records.
//
// Example:
//
//	f, err := os.Open("routes.pp")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//	records, err := routes.ParseAll(f, routes.NewScanner(routes.DefaultGrammar))
package routes
