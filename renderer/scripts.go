package renderer

import "fmt"

// Client-side scripts inlined into every rendered page. They only
// reference same-origin endpoints so the output document stays fully
// self-contained.

// leadFormScript wires the capture form: fetch-based submit, form
// replaced by the thank-you line on success.
func leadFormScript(pageID uint) string {
	return fmt.Sprintf(`<script>
(function(){
  var form=document.getElementById('pn-lead-form');
  if(!form)return;
  form.addEventListener('submit',function(e){
    e.preventDefault();
    var email=form.querySelector('input[name=email]').value;
    fetch('/landing-leads',{
      method:'POST',
      headers:{'Content-Type':'application/json'},
      body:JSON.stringify({landing_page_id:%d,email:email})
    }).then(function(res){
      if(res.ok){
        var thanks=document.createElement('div');
        thanks.className='pn-lead-thanks';
        thanks.textContent=form.getAttribute('data-thanks');
        form.parentNode.replaceChild(thanks,form);
      }
    });
  });
})();
</script>`, pageID)
}

// countdownScript ticks every element carrying a data-target timestamp
// down to zero.
const countdownScript = `<script>
(function(){
  var els=document.querySelectorAll('[data-target]');
  if(!els.length)return;
  function pad(n){return n<10?'0'+n:''+n;}
  function tick(){
    els.forEach(function(el){
      var target=new Date(el.getAttribute('data-target')).getTime();
      var diff=target-Date.now();
      if(isNaN(target)){el.textContent='';return;}
      if(diff<=0){el.textContent='00:00:00';return;}
      var d=Math.floor(diff/86400000);
      var h=Math.floor(diff%86400000/3600000);
      var m=Math.floor(diff%3600000/60000);
      var s=Math.floor(diff%60000/1000);
      el.textContent=(d>0?d+'d ':'')+pad(h)+':'+pad(m)+':'+pad(s);
    });
  }
  tick();
  setInterval(tick,1000);
})();
</script>`

// analyticsScript fires the view beacon once per load, click beacons on
// any interactive element and a download beacon for .pdf links.
func analyticsScript(pageID uint) string {
	return fmt.Sprintf(`<script>
(function(){
  function beacon(type){
    fetch('/events',{
      method:'POST',
      headers:{'Content-Type':'application/json'},
      body:JSON.stringify({landing_page_id:%d,event_type:type,path:location.pathname,referrer:document.referrer}),
      keepalive:true
    }).catch(function(){});
  }
  beacon('view');
  document.addEventListener('click',function(e){
    var el=e.target.closest('a,button');
    if(!el)return;
    beacon('click');
    var href=el.getAttribute('href')||'';
    if(href.toLowerCase().split('?')[0].slice(-4)==='.pdf'){beacon('download');}
  });
})();
</script>`, pageID)
}

// checkoutScript starts a Stripe checkout for offer buy buttons and
// follows the returned session URL.
func checkoutScript(pageID uint) string {
	return fmt.Sprintf(`<script>
(function(){
  document.querySelectorAll('[data-checkout]').forEach(function(btn){
    btn.addEventListener('click',function(){
      fetch('/checkout/%d',{
        method:'POST',
        headers:{'Content-Type':'application/json'},
        body:JSON.stringify({block_id:btn.getAttribute('data-checkout')})
      }).then(function(res){return res.json();}).then(function(data){
        if(data.success&&data.url){location.href=data.url;}
      }).catch(function(){});
    });
  });
})();
</script>`, pageID)
}
