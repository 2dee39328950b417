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

	// register the mysql driver with database/sql
	_ "github.com/go-sql-driver/mysql"

	"github.com/stashbase/stash/common/config"
)

// PluginNameMySQL is the registered name of the mysql plugin
const PluginNameMySQL = "mysql"

type mysqlPlugin struct{}

func init() {
	RegisterPlugin(PluginNameMySQL, &mysqlPlugin{})
}

func (p *mysqlPlugin) DriverName() string {
	return PluginNameMySQL
}

func (p *mysqlPlugin) BuildDSN(cfg *config.SQL) string {
	return fmt.Sprintf(
		"%v:%v@tcp(%v)/%v?parseTime=true",
		cfg.User,
		cfg.Password,
		cfg.ConnectAddr,
		cfg.DatabaseName,
	)
}
