// Copyright (c) 2024 Stashbase, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package sql

import (
	"fmt"

	// register the postgres driver with database/sql
	_ "github.com/lib/pq"

	"github.com/stashbase/stash/common/config"
)

// PluginNamePostgres is the registered name of the postgres plugin
const PluginNamePostgres = "postgres"

type postgresPlugin struct{}

func init() {
	RegisterPlugin(PluginNamePostgres, &postgresPlugin{})
}

func (p *postgresPlugin) DriverName() string {
	return PluginNamePostgres
}

func (p *postgresPlugin) BuildDSN(cfg *config.SQL) string {
	return fmt.Sprintf(
		"postgres://%v:%v@%v/%v?sslmode=disable",
		cfg.User,
		cfg.Password,
		cfg.ConnectAddr,
		cfg.DatabaseName,
	)
}
