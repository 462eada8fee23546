package app

import (
	"github.com/specialistvlad/axiomgrid/internal/registry"
	"github.com/specialistvlad/axiomgrid/modules/javascript"
	"github.com/specialistvlad/axiomgrid/modules/python"
	"github.com/specialistvlad/axiomgrid/modules/rust"
)

// coreModules is the definitive list of all language checkers that are
// compiled into the axiomgrid binary.
var coreModules = []registry.Module{
	&python.Module{},
	&rust.Module{},
	&javascript.Module{},
}
